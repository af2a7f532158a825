package cmd

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/zpark/eliza/internal/config"
	"github.com/zpark/eliza/internal/logging"
	"github.com/zpark/eliza/internal/root"
)

// toolkit bundles the pieces every subcommand needs: the workspace root, the
// loaded configuration, and a logger.
type toolkit struct {
	root string
	cfg  *config.Config
	log  *zap.SugaredLogger
}

func newToolkit() (*toolkit, error) {
	log, err := logging.New(viper.GetBool("debug"))
	if err != nil {
		return nil, err
	}

	workspace, err := root.FindWorkspaceRoot()
	if err != nil {
		// Outside a checkout the current directory still works for
		// self-contained commands like changelog.
		workspace, _ = os.Getwd()
		log.Warnf("workspace root not found, using %s", workspace)
	}

	cfgPath := viper.GetString("config")
	if !filepath.IsAbs(cfgPath) {
		cfgPath = filepath.Join(workspace, cfgPath)
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}

	return &toolkit{root: workspace, cfg: cfg, log: log}, nil
}

// path resolves a possibly relative configured path against the workspace
// root.
func (t *toolkit) path(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(t.root, p)
}
