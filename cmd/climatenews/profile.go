package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/TobiSchelling/climatenews/internal/profile"
)

var (
	profileConcerns   string
	profileGeographic string
	profileCategories string
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "View and edit your climate preferences",
}

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show your profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := openApp()
		if err != nil {
			return err
		}
		defer app.Close()

		p := app.profiles.Get()
		fmt.Printf("Climate concerns:    %s\n", orUnset(p.ClimateConcerns))
		fmt.Printf("Geographic focus:    %s\n", orUnset(p.GeographicFocus))
		fmt.Printf("Interest categories: %s\n", orUnset(p.InterestCategories))
		fmt.Printf("Session:             %s\n", p.SessionID)
		if !app.profiles.IsComplete() {
			fmt.Println("\nSet up your profile for personalized analysis.")
		}

		if len(p.ConversationHistory) > 0 {
			fmt.Println("\nConversation:")
			for _, line := range p.ConversationHistory {
				fmt.Printf("  %s\n", line)
			}
		}
		return nil
	},
}

func orUnset(s string) string {
	if s == "" {
		return "(not set)"
	}
	return s
}

var profileSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Set profile preferences",
	Long: `Set profile preferences from comma-separated option values or labels.

Run 'climatenews profile options' to list the choices.`,
	Example: "  climatenews profile set --concerns flooding,heat-waves --geographic europe",
	RunE: func(cmd *cobra.Command, args []string) error {
		var u profile.Update
		changed := false
		set := func(flag, raw string, options []profile.Option, dst **string) error {
			if !cmd.Flags().Changed(flag) {
				return nil
			}
			values := profile.StringToValues(raw, options)
			if strings.TrimSpace(raw) != "" && len(values) == 0 {
				return fmt.Errorf("no known %s in %q", flag, raw)
			}
			s := profile.ValuesToString(values, options)
			*dst = &s
			changed = true
			return nil
		}

		if err := set("concerns", profileConcerns, profile.ClimateConcernOptions, &u.ClimateConcerns); err != nil {
			return err
		}
		if err := set("geographic", profileGeographic, profile.GeographicFocusOptions, &u.GeographicFocus); err != nil {
			return err
		}
		if err := set("categories", profileCategories, profile.InterestCategoryOptions, &u.InterestCategories); err != nil {
			return err
		}
		if !changed {
			return fmt.Errorf("nothing to set; pass --concerns, --geographic or --categories")
		}

		app, err := openApp()
		if err != nil {
			return err
		}
		defer app.Close()

		if _, err := app.profiles.Update(u); err != nil {
			return err
		}
		fmt.Println("Profile updated")
		return nil
	},
}

var profileResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Clear preferences and start a new conversation",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := openApp()
		if err != nil {
			return err
		}
		defer app.Close()

		if _, err := app.profiles.Reset(); err != nil {
			return err
		}
		fmt.Println("Profile reset")
		return nil
	},
}

var profileChatCmd = &cobra.Command{
	Use:   "chat <message>",
	Short: "Talk to the profile setup assistant",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := openApp()
		if err != nil {
			return err
		}
		defer app.Close()

		if !app.agent.IsConfigured() {
			return fmt.Errorf("%s is not set", cfg.Agent.TokenEnv)
		}

		reply, err := app.assistant.Send(cmd.Context(), strings.Join(args, " "))
		if err != nil {
			return noticeError(err, cfg.Agent.TokenEnv)
		}
		fmt.Println(reply)
		return nil
	},
}

var profileOptionsCmd = &cobra.Command{
	Use:   "options",
	Short: "List the available preference options",
	Run: func(cmd *cobra.Command, args []string) {
		printOptions("Climate concerns (--concerns)", profile.ClimateConcernOptions)
		printOptions("Geographic focus (--geographic)", profile.GeographicFocusOptions)
		printOptions("Interest categories (--categories)", profile.InterestCategoryOptions)
	},
}

func printOptions(title string, options []profile.Option) {
	fmt.Println(title + ":")
	for _, o := range options {
		fmt.Printf("  %-22s %s\n", o.Value, o.Label)
	}
	fmt.Println()
}

func init() {
	profileSetCmd.Flags().StringVar(&profileConcerns, "concerns", "", "Climate concerns")
	profileSetCmd.Flags().StringVar(&profileGeographic, "geographic", "", "Geographic focus")
	profileSetCmd.Flags().StringVar(&profileCategories, "categories", "", "Interest categories")

	profileCmd.AddCommand(profileShowCmd, profileSetCmd, profileResetCmd, profileChatCmd, profileOptionsCmd)
}
