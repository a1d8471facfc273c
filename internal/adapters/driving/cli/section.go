package cli

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/custodia-labs/folio-cli/internal/core/domain"
)

var titleCaser = cases.Title(language.English)

var (
	sectionID        string
	sectionTitle     string
	sectionContent   string
	sectionListJSON  bool
	sectionBg        string
	sectionFg        string
	sectionPadding   string
	sectionAnimation string
	sectionTrigger   string
	sectionRemoveYes bool
	sectionVisible   bool
)

var sectionCmd = &cobra.Command{
	Use:   "section",
	Short: "Manage portfolio sections",
	Long: `Add, edit, reorder and remove the sections of your portfolio.

Section types: hero, about, projects, skills, experience, education,
contact, testimonials, custom.`,
}

var sectionAddCmd = &cobra.Command{
	Use:   "add <type>",
	Short: "Add a section",
	Long: `Append a section of the given type with its default content.

Examples:
  folio section add hero
  folio section add about --title "Who I am"
  folio section add custom --content '{"html":"<p>Hi</p>"}'`,
	Args: cobra.ExactArgs(1),
	RunE: runSectionAdd,
}

var sectionListCmd = &cobra.Command{
	Use:   "list",
	Short: "List sections in display order",
	Args:  cobra.NoArgs,
	RunE:  runSectionList,
}

var sectionShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a section as JSON",
	Args:  cobra.ExactArgs(1),
	RunE:  runSectionShow,
}

var sectionUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a section",
	Long: `Merge changes into a section. Only the flags you pass are changed.

Content is a JSON object merged key by key into the existing content.`,
	Args: cobra.ExactArgs(1),
	RunE: runSectionUpdate,
}

var sectionRemoveCmd = &cobra.Command{
	Use:   "remove <id>",
	Short: "Remove a section",
	Args:  cobra.ExactArgs(1),
	RunE:  runSectionRemove,
}

var sectionMoveCmd = &cobra.Command{
	Use:   "move <from> <to>",
	Short: "Move a section to another position",
	Long:  `Move the section at index <from> to index <to>. Indexes start at 0.`,
	Args:  cobra.ExactArgs(2),
	RunE:  runSectionMove,
}

var sectionSelectCmd = &cobra.Command{
	Use:   "select <id>",
	Short: "Select a section for editing",
	Args:  cobra.ExactArgs(1),
	RunE:  runSectionSelect,
}

var sectionShowHideCmd = &cobra.Command{
	Use:   "show-hide <id>",
	Short: "Show or hide a section",
	Long: `Set whether a section is rendered.

Examples:
  folio section show-hide about --visible=false`,
	Args: cobra.ExactArgs(1),
	RunE: runSectionShowHide,
}

func init() {
	sectionAddCmd.Flags().StringVar(&sectionID, "id", "", "section id (generated when empty)")
	sectionAddCmd.Flags().StringVar(&sectionTitle, "title", "", "section title")
	sectionAddCmd.Flags().StringVar(&sectionContent, "content", "", "section content as a JSON object")

	sectionListCmd.Flags().BoolVar(&sectionListJSON, "json", false, "output sections as JSON")

	sectionUpdateCmd.Flags().StringVar(&sectionTitle, "title", "", "new title")
	sectionUpdateCmd.Flags().StringVar(&sectionContent, "content", "", "content fields to merge, as JSON")
	sectionUpdateCmd.Flags().StringVar(&sectionBg, "bg", "", "background colour")
	sectionUpdateCmd.Flags().StringVar(&sectionFg, "fg", "", "text colour")
	sectionUpdateCmd.Flags().StringVar(&sectionPadding, "padding", "", "padding, e.g. 4rem 2rem")
	sectionUpdateCmd.Flags().StringVar(&sectionAnimation, "animation", "", "animation type, e.g. fadeIn")
	sectionUpdateCmd.Flags().StringVar(&sectionTrigger, "trigger", "", "animation trigger: scroll, hover, click or load")

	sectionRemoveCmd.Flags().BoolVarP(&sectionRemoveYes, "yes", "y", false, "remove without asking")

	sectionShowHideCmd.Flags().BoolVar(&sectionVisible, "visible", true, "whether the section is rendered")

	sectionCmd.AddCommand(sectionAddCmd)
	sectionCmd.AddCommand(sectionListCmd)
	sectionCmd.AddCommand(sectionShowCmd)
	sectionCmd.AddCommand(sectionUpdateCmd)
	sectionCmd.AddCommand(sectionRemoveCmd)
	sectionCmd.AddCommand(sectionMoveCmd)
	sectionCmd.AddCommand(sectionSelectCmd)
	sectionCmd.AddCommand(sectionShowHideCmd)
	rootCmd.AddCommand(sectionCmd)
}

func runSectionAdd(cmd *cobra.Command, args []string) error {
	t, err := domain.ParseSectionType(args[0])
	if err != nil {
		return err
	}
	content, err := parseContent(sectionContent)
	if err != nil {
		return err
	}

	res, err := run(cmd, domain.AddSectionCommand{
		Type:    t,
		ID:      sectionID,
		Title:   sectionTitle,
		Content: content,
	})
	if err != nil {
		return err
	}
	if res.Section != nil {
		cmd.Printf("  id: %s\n", res.Section.ID)
	}
	return nil
}

func runSectionList(cmd *cobra.Command, _ []string) error {
	if builderService == nil {
		return errNotConfigured
	}
	sections := builderService.Sections()

	if sectionListJSON {
		return printJSON(cmd, sections)
	}

	if len(sections) == 0 {
		cmd.Println("No sections yet. Add one with 'folio section add <type>'.")
		return nil
	}

	selected := builderService.Selected()
	cmd.Printf("Sections (%d):\n\n", len(sections))
	for i := range sections {
		s := &sections[i]
		marker := " "
		if s.ID == selected {
			marker = "*"
		}
		cmd.Printf(" %s [%d] %-14s %s", marker, s.Order, titleCaser.String(string(s.Type)), s.Heading())
		if !s.Visible {
			cmd.Print(" (hidden)")
		}
		cmd.Printf("\n       id: %s\n", s.ID)
	}
	return nil
}

func runSectionShow(cmd *cobra.Command, args []string) error {
	if builderService == nil {
		return errNotConfigured
	}
	section, err := builderService.Section(args[0])
	if err != nil {
		return err
	}
	return printJSON(cmd, section)
}

func runSectionUpdate(cmd *cobra.Command, args []string) error {
	patch, err := sectionPatchFromFlags(cmd)
	if err != nil {
		return err
	}
	if patch.IsEmpty() {
		return fmt.Errorf("%w: nothing to update, pass at least one flag", domain.ErrInvalidInput)
	}
	_, err = run(cmd, domain.UpdateSectionCommand{ID: args[0], Patch: patch})
	return err
}

// sectionPatchFromFlags builds a patch from the flags that were set.
func sectionPatchFromFlags(cmd *cobra.Command) (domain.SectionPatch, error) {
	var patch domain.SectionPatch
	flags := cmd.Flags()

	if flags.Changed("title") {
		title := sectionTitle
		patch.Title = &title
	}
	if flags.Changed("content") {
		content, err := parseContent(sectionContent)
		if err != nil {
			return patch, err
		}
		patch.Content = content
	}

	var styles domain.SectionStyles
	if flags.Changed("bg") {
		styles.BackgroundColor = sectionBg
	}
	if flags.Changed("fg") {
		styles.TextColor = sectionFg
	}
	if flags.Changed("padding") {
		styles.Padding = sectionPadding
	}
	if styles != (domain.SectionStyles{}) {
		patch.Styles = &styles
	}

	var anim domain.AnimationPatch
	if flags.Changed("animation") {
		t := domain.AnimationType(sectionAnimation)
		anim.Type = &t
	}
	if flags.Changed("trigger") {
		trigger := domain.AnimationTrigger(sectionTrigger)
		anim.Trigger = &trigger
	}
	if anim.Type != nil || anim.Trigger != nil {
		patch.Animations = &anim
	}
	return patch, nil
}

func runSectionRemove(cmd *cobra.Command, args []string) error {
	if builderService == nil {
		return errNotConfigured
	}
	section, err := builderService.Section(args[0])
	if err != nil {
		return err
	}

	if !sectionRemoveYes {
		ok, err := confirm(cmd, fmt.Sprintf("Remove section %q?", section.Heading()))
		if err != nil {
			return err
		}
		if !ok {
			cmd.Println("Cancelled.")
			return nil
		}
	}

	_, err = run(cmd, domain.RemoveSectionCommand{ID: section.ID})
	return err
}

func runSectionMove(cmd *cobra.Command, args []string) error {
	from, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("%w: from index %q", domain.ErrInvalidInput, args[0])
	}
	to, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("%w: to index %q", domain.ErrInvalidInput, args[1])
	}
	_, err = run(cmd, domain.ReorderSectionsCommand{From: from, To: to})
	return err
}

func runSectionSelect(cmd *cobra.Command, args []string) error {
	_, err := run(cmd, domain.SelectSectionCommand{ID: args[0]})
	return err
}

func runSectionShowHide(cmd *cobra.Command, args []string) error {
	visible := sectionVisible
	_, err := run(cmd, domain.UpdateSectionCommand{
		ID:    args[0],
		Patch: domain.SectionPatch{Visible: &visible},
	})
	return err
}

// parseContent decodes a JSON object flag. Empty input yields nil.
func parseContent(raw string) (map[string]any, error) {
	if raw == "" {
		return nil, nil
	}
	var content map[string]any
	if err := json.Unmarshal([]byte(raw), &content); err != nil {
		return nil, fmt.Errorf("%w: content must be a JSON object: %v", domain.ErrInvalidInput, err)
	}
	return content, nil
}
