package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"natkey/config"
	"natkey/internal/adapter/store"
	"natkey/internal/domain"
	"natkey/internal/usecase"
)

var keysPrefix string

var keysCmd = &cobra.Command{
	Use:   "keys [path]",
	Short: "List stored file keys",
	Long: `List the keys recorded by "natkey scan" for a directory
(default is the root directory). --prefix narrows the listing to paths
under the given prefix, relative to that directory.

Examples:
  natkey keys /path/to/photos              # Keys written by 'natkey scan /path/to/photos'
  natkey keys . --prefix album             # Only files under ./album`,
	Args: cobra.MaximumNArgs(1),
	RunE: runKeys,
}

func init() {
	keysCmd.Flags().StringVar(&keysPrefix, "prefix", "", "only list paths starting with this prefix")
	rootCmd.AddCommand(keysCmd)
}

type keyView struct {
	Path   string         `json:"path" yaml:"path"`
	Date   string         `json:"date" yaml:"date"`
	Tokens []domain.Token `json:"tokens" yaml:"tokens"`
}

func runKeys(cmd *cobra.Command, args []string) error {
	root := GetRootDir()
	if len(args) > 0 {
		var err error
		root, err = filepath.Abs(args[0])
		if err != nil {
			return fmt.Errorf("invalid path: %w", err)
		}
	}

	dbPath := config.KeyDBPath(root)
	if _, err := os.Stat(dbPath); err != nil {
		return fmt.Errorf("no keys found at %s (run 'natkey scan' first): %w", dbPath, err)
	}

	st, err := store.NewBoltStore(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open key store: %w", err)
	}
	defer st.Close()

	prefix := keysPrefix
	if prefix != "" && !filepath.IsAbs(prefix) {
		prefix = filepath.Join(root, prefix)
	}
	recs, err := usecase.NewKeysUseCase(st).List(prefix)
	if err != nil {
		return err
	}

	views := make([]keyView, len(recs))
	for i, rec := range recs {
		views[i] = keyView{Path: rec.Path, Date: rec.Date.String(), Tokens: rec.Tokens}
	}

	return render(cmd.OutOrStdout(), GetConfig().Output.Format, views, func(w io.Writer) error {
		for _, v := range views {
			if _, err := fmt.Fprintf(w, "%s\t%s\t%s\n", v.Path, v.Date, formatTokens(v.Tokens)); err != nil {
				return err
			}
		}
		return nil
	})
}
