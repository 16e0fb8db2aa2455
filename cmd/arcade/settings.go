package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/retro-arcade/internal/storage"
)

var (
	flagSetSound  string
	flagSetVolume float64
	flagSetReset  bool
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or change settings",
	Long: `Show the stored settings, or change them with flags.
The global --difficulty flag stores a new default difficulty here.

Examples:
  arcade settings
  arcade settings --sound off
  arcade settings --volume 0.4 --difficulty hard
  arcade settings --reset`,
	Args: cobra.NoArgs,
	RunE: runSettings,
}

func init() {
	settingsCmd.Flags().StringVar(&flagSetSound, "sound", "", "Sound effects: on or off")
	settingsCmd.Flags().Float64Var(&flagSetVolume, "volume", -1, "Volume from 0 to 1")
	settingsCmd.Flags().BoolVar(&flagSetReset, "reset", false, "Restore default settings")
}

func runSettings(cmd *cobra.Command, _ []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer store.Close()
	store.SetLogger(stderrLogger("storage"))

	s := store.LoadSettings()
	changed := false
	if flagSetReset {
		s, changed = storage.DefaultSettings(), true
	}

	switch flagSetSound {
	case "":
	case "on", "true", "1":
		s.Sound, changed = true, true
	case "off", "false", "0":
		s.Sound, changed = false, true
	default:
		return fmt.Errorf("--sound must be on or off, got %q", flagSetSound)
	}
	if cmd.Flags().Changed("volume") {
		s.Volume, changed = flagSetVolume, true
	}
	if flagDifficulty != "" {
		p, _ := parsePreset(flagDifficulty)
		s.Difficulty, changed = string(p), true
	}

	if changed {
		if err := store.SaveSettings(s); err != nil {
			return fmt.Errorf("saving settings: %w", err)
		}
	}

	sound := "off"
	if s.Sound {
		sound = "on"
	}
	fmt.Printf("Sound:       %s\n", sound)
	fmt.Printf("Volume:      %.0f%%\n", s.Volume*100)
	fmt.Printf("Difficulty:  %s\n", s.Preset())
	if changed {
		fmt.Println()
		fmt.Println("Settings saved.")
	}
	return nil
}
