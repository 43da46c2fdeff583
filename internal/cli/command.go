package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"codeberg.org/snonux/listenfill/internal"
	"codeberg.org/snonux/listenfill/internal/audio"
	"codeberg.org/snonux/listenfill/internal/exercise"
	"codeberg.org/snonux/listenfill/internal/remote"
)

// CreateRootCommand creates and configures the root cobra command
func CreateRootCommand(flags *Flags) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "listenfill [subtitles.srt]",
		Short: "Listening fill-in-the-blank exercise generator",
		Long: `listenfill turns subtitle files into listening exercises: every
subtitle line becomes a sentence with one or more words blanked out.

Blanks are chosen locally with a part-of-speech tagger, remotely by an
OpenAI-compatible or Gemini text-generation service, or by both (hybrid).

Examples:
  listenfill                                # Launch interactive GUI (default)
  listenfill movie.srt                      # Generate exercises via CLI
  listenfill movie.srt -o drills.yaml       # Export as YAML
  listenfill --mode remote movie.srt        # Let the text-generation service pick blanks
  listenfill --batch subtitles.txt --save   # Process several files and save them to the library`,
		Args:    cobra.MaximumNArgs(1),
		Version: internal.Version,
	}

	// Set up flags
	setupFlags(rootCmd, flags)

	return rootCmd
}

func setupFlags(cmd *cobra.Command, flags *Flags) {
	// Global flags
	cmd.PersistentFlags().StringVar(&flags.CfgFile, "config", "", "config file (default is $HOME/.listenfill.yaml)")
	cmd.PersistentFlags().StringVar(&flags.LogMode, "log", flags.LogMode, "Log mode: info, debug or prod")

	// Local flags
	cmd.Flags().StringVarP(&flags.Output, "output", "o", "", "Export file (.json, .yaml, .yml, .csv or .apkg; default <subtitles>_exercises.json)")
	cmd.Flags().StringVar(&flags.Video, "video", "", "Video file the subtitles belong to (used for the library)")
	cmd.Flags().StringVar(&flags.BatchFile, "batch", "", "Process subtitle files listed in a file (one per line, optionally 'subs.srt = video.mp4')")
	cmd.Flags().Int64Var(&flags.OffsetMs, "offset", 0, "Subtitle time offset in milliseconds")
	cmd.Flags().DurationVar(&flags.From, "from", 0, "Only use subtitles from this video time on, e.g. 5m30s")
	cmd.Flags().DurationVar(&flags.To, "to", 0, "Only use subtitles up to this video time (0 means the end)")
	cmd.Flags().BoolVar(&flags.Save, "save", false, "Save the generated exercises to the library")
	cmd.Flags().BoolVar(&flags.ListModels, "list-models", false, "List available chat models for the current API key")

	// Exercise flags
	cmd.Flags().StringVarP(&flags.Mode, "mode", "m", flags.Mode, "Generation mode: local, remote or hybrid")
	cmd.Flags().StringVarP(&flags.Language, "language", "l", flags.Language, "Language of the subtitles")
	cmd.Flags().StringVar(&flags.Level, "level", flags.Level, "Learner level, e.g. A1-A2, B1-B2, C1-C2")
	cmd.Flags().StringSliceVar(&flags.Focus, "focus", flags.Focus, "Focus areas: "+strings.Join(exercise.FocusAreas, ", "))
	cmd.Flags().IntVar(&flags.Density, "density", flags.Density, "Blank density in percent (10 to 50)")
	cmd.Flags().IntVar(&flags.MaxBlanks, "max-blanks", flags.MaxBlanks, "Maximum blanks per sentence for local selection (0 derives it from the density)")

	// Text-generation service flags
	cmd.Flags().StringVar(&flags.APIURL, "api-url", flags.APIURL, "Chat-completions endpoint of the text-generation service")
	cmd.Flags().StringVar(&flags.Model, "model", flags.Model, "Model name")
	cmd.Flags().IntVar(&flags.Timeout, "timeout", flags.Timeout, "Request timeout in seconds")
	cmd.Flags().StringVar(&flags.Provider, "provider", flags.Provider, "Service provider: openai or gemini")

	// Speech flags
	cmd.Flags().StringVar(&flags.AudioProvider, "audio-provider", flags.AudioProvider, "Sentence playback: auto, openai or espeak")

	// Bind flags to viper
	bindFlagsToViper(cmd)
}

func bindFlagsToViper(cmd *cobra.Command) {
	viper.BindPFlag("log.mode", cmd.PersistentFlags().Lookup("log"))
	viper.BindPFlag("exercise.generation_mode", cmd.Flags().Lookup("mode"))
	viper.BindPFlag("exercise.language", cmd.Flags().Lookup("language"))
	viper.BindPFlag("exercise.level", cmd.Flags().Lookup("level"))
	viper.BindPFlag("exercise.focus_areas", cmd.Flags().Lookup("focus"))
	viper.BindPFlag("exercise.blank_density", cmd.Flags().Lookup("density"))
	viper.BindPFlag("exercise.spacy_options.max_blanks", cmd.Flags().Lookup("max-blanks"))
	viper.BindPFlag("ai_service.api_url", cmd.Flags().Lookup("api-url"))
	viper.BindPFlag("ai_service.model", cmd.Flags().Lookup("model"))
	viper.BindPFlag("ai_service.timeout", cmd.Flags().Lookup("timeout"))
	viper.BindPFlag("ai_service.provider", cmd.Flags().Lookup("provider"))
	viper.BindPFlag("audio.provider", cmd.Flags().Lookup("audio-provider"))
}

func setDefaults() {
	d := exercise.DefaultExerciseConfig()
	viper.SetDefault("exercise.spacy_options.exclude_stop", d.ExcludeStopwords)
	viper.SetDefault("exercise.spacy_options.hint_lemma", d.HintIncludesLemma)
	viper.SetDefault("exercise.spacy_options.prefer_entities", d.PreferNamedEntities)
	viper.SetDefault("library.path", DefaultLibraryPath())
	viper.SetDefault("audio.cache_dir", DefaultAudioCacheDir())
}

// InitConfig initializes viper configuration
func InitConfig(cfgFile string) {
	setDefaults()

	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error getting home directory: %v\n", err)
			return
		}

		// Search config in home directory with name ".listenfill" (without extension)
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".listenfill")
	}

	// Environment variables, e.g. LISTENFILL_AI_SERVICE_API_KEY
	viper.SetEnvPrefix("LISTENFILL")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Read config file
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// GetOpenAIKey retrieves the API key from environment or config
func GetOpenAIKey() string {
	// First check environment variable
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		return key
	}

	// Then check config file
	return viper.GetString("ai_service.api_key")
}

// DefaultLibraryPath returns the library database location under the XDG state directory
func DefaultLibraryPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "state", "listenfill", "library.db")
}

// LibraryPath returns the configured library database path
func LibraryPath() string {
	if p := viper.GetString("library.path"); p != "" {
		return p
	}
	return DefaultLibraryPath()
}

// DefaultAudioCacheDir returns where synthesized sentences are cached
func DefaultAudioCacheDir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".cache", "listenfill", "audio")
}

// AudioConfig builds the sentence playback configuration. The language
// follows the exercise language so espeak-ng picks a matching voice.
func AudioConfig() audio.Config {
	cfg := audio.DefaultConfig()
	cfg.AI = AIConfig()
	cfg.CacheDir = DefaultAudioCacheDir()

	if v := viper.GetString("exercise.language"); v != "" {
		cfg.Language = v
	}
	if v := viper.GetString("audio.provider"); v != "" {
		cfg.Provider = v
	}
	if v := viper.GetString("audio.cache_dir"); v != "" {
		cfg.CacheDir = v
	}
	if v := viper.GetString("audio.openai_model"); v != "" {
		cfg.OpenAIModel = v
	}
	if v := viper.GetString("audio.openai_voice"); v != "" {
		cfg.OpenAIVoice = v
	}
	if v := viper.GetFloat64("audio.openai_speed"); v > 0 {
		cfg.OpenAISpeed = v
	}
	if v := viper.GetInt("audio.espeak_speed"); v > 0 {
		cfg.ESpeakSpeed = v
	}
	return cfg
}

// LogMode returns the configured log mode
func LogMode() string {
	return viper.GetString("log.mode")
}

// AIConfig builds the text-generation service configuration
func AIConfig() remote.Config {
	cfg := remote.DefaultConfig()
	cfg.APIKey = GetOpenAIKey()
	if v := viper.GetString("ai_service.api_url"); v != "" {
		cfg.APIURL = v
	}
	if v := viper.GetString("ai_service.model"); v != "" {
		cfg.Model = v
	}
	if v := viper.GetInt("ai_service.timeout"); v > 0 {
		cfg.Timeout = time.Duration(v) * time.Second
	}
	if v := viper.GetString("ai_service.provider"); v != "" {
		cfg.Provider = v
	}
	return cfg
}

// ExerciseConfig builds the exercise configuration. Unset keys keep the
// defaults of exercise.DefaultExerciseConfig.
func ExerciseConfig() (exercise.ExerciseConfig, error) {
	cfg := exercise.DefaultExerciseConfig()

	if v := viper.GetString("exercise.language"); v != "" {
		cfg.Language = v
	}
	if v := viper.GetString("exercise.level"); v != "" {
		cfg.Level = v
	}
	if v := viper.GetStringSlice("exercise.focus_areas"); len(v) > 0 {
		cfg.FocusAreas = v
	}
	if viper.IsSet("exercise.blank_density") {
		cfg.BlankDensity = viper.GetInt("exercise.blank_density")
	}
	if v := viper.GetString("exercise.generation_mode"); v != "" {
		mode, err := exercise.ParseMode(v)
		if err != nil {
			return cfg, err
		}
		cfg.Mode = mode
	}

	if v := viper.GetStringSlice("exercise.spacy_options.pos"); len(v) > 0 {
		cfg.POSAllowList = v
	}
	if viper.IsSet("exercise.spacy_options.max_blanks") {
		cfg.MaxBlanksPerSentence = viper.GetInt("exercise.spacy_options.max_blanks")
	}
	if viper.IsSet("exercise.spacy_options.exclude_stop") {
		cfg.ExcludeStopwords = viper.GetBool("exercise.spacy_options.exclude_stop")
	}
	if viper.IsSet("exercise.spacy_options.hint_lemma") {
		cfg.HintIncludesLemma = viper.GetBool("exercise.spacy_options.hint_lemma")
	}
	if viper.IsSet("exercise.spacy_options.prefer_entities") {
		cfg.PreferNamedEntities = viper.GetBool("exercise.spacy_options.prefer_entities")
	}

	cfg = cfg.Normalize()
	return cfg, cfg.Validate()
}
