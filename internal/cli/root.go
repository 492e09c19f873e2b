package cli

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"github.com/Swochhanda14/frontbooth/cache"
	"github.com/Swochhanda14/frontbooth/config"
	"github.com/Swochhanda14/frontbooth/form"
	"github.com/Swochhanda14/frontbooth/forms"
	"github.com/Swochhanda14/frontbooth/internal/ui"
	"github.com/Swochhanda14/frontbooth/validation"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// ErrBlocked is returned when a submission fails validation.
var ErrBlocked = errors.New("submission blocked")

var rootCmd = &cobra.Command{
	Use:   "frontbooth",
	Short: "Fill in and validate forms from the terminal",
	Long: `frontbooth mounts declarative forms, validates every answer against the
form's rules and prints the submitted values once everything passes.`,
	PersistentPreRunE: setup,
}

var (
	configPath string
	modeFlag   string
	verbose    bool

	cfg           *config.Config
	engine        *validation.Engine
	restoreLogger func()
)

func setup(cmd *cobra.Command, args []string) error {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("loading .env: %w", err)
	}

	loaded, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if modeFlag != "" {
		mode, err := form.ParseMode(modeFlag)
		if err != nil {
			return err
		}
		loaded.Mode = mode
	}
	if verbose {
		loaded.Log.Level = "debug"
	}
	cfg = loaded

	restore, err := cfg.Log.SetupLogger()
	if err != nil {
		return err
	}
	restoreLogger = restore

	engine = validation.NewEngine(
		validation.Default().Validator(),
		validation.WithPatternCache(cache.NewPatternCache(cfg.Cache.PatternCache())),
	)
	zap.L().Debug("Configuration loaded",
		zap.Stringer("mode", cfg.Mode),
		zap.Int64("upload_max_bytes", int64(cfg.Upload.MaxBytes)),
		zap.Strings("upload_types", cfg.Upload.Types),
	)
	return nil
}

// mountForm builds the form to run: a schema file when one is given, otherwise
// the bundled form called name.
func mountForm(ctx context.Context, name, schemaPath string, opts ...form.Option) (*form.Form, error) {
	def, err := definition(ctx, name, schemaPath)
	if err != nil {
		return nil, err
	}

	// - the flag, or a configured mode other than the default, replaces the form's own
	if modeFlag != "" || cfg.Mode != form.OnSubmit {
		opts = append([]form.Option{form.WithMode(cfg.Mode)}, opts...)
	}
	return form.New(def, opts...)
}

func definition(ctx context.Context, name, schemaPath string) (form.Definition, error) {
	if schemaPath != "" {
		data, err := readFile(schemaPath)
		if err != nil {
			return form.Definition{}, err
		}
		return form.LoadSchema(ctx, engine, data)
	}
	if name == "" {
		return form.Definition{}, fmt.Errorf("name a form or pass --schema")
	}
	return forms.Lookup(ctx, name, forms.Options{Engine: engine, Upload: cfg.Upload.Limits()})
}

func Execute() error {
	rootCmd.SilenceUsage = true
	// - cobra skips post-run hooks when a command fails, so the logger is restored here
	defer func() {
		if restoreLogger != nil {
			restoreLogger()
			restoreLogger = nil
		}
	}()
	if err := rootCmd.Execute(); err != nil {
		if ui.IsAbort(err) {
			return nil
		}
		return err
	}
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a frontbooth.yaml config file")
	rootCmd.PersistentFlags().StringVar(&modeFlag, "mode", "", "Validation mode: onSubmit, onChange, onBlur, onTouched or all")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Enable debug logging and print every form event")
}
