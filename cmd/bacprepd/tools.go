package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mind-engage/mindengage-bac/internal/exam"
	"github.com/mind-engage/mindengage-bac/internal/formats"
	"github.com/mind-engage/mindengage-bac/internal/grading"
)

var flattenCmd = &cobra.Command{
	Use:   "flatten [blueprint-file]",
	Short: "Expand an exam blueprint into its ordered question list",
	Long: "Flattens a blueprint read from a JSON or YAML file (\"-\" for JSON on stdin),\n" +
		"or the structure of a catalog preset when --preset is given.",
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		subject, _ := cmd.Flags().GetString("subject")
		presetID, _ := cmd.Flags().GetString("preset")

		var bp exam.Blueprint
		switch {
		case presetID != "":
			cat, err := loadCatalog()
			if err != nil {
				return err
			}
			p, err := cat.Preset(presetID)
			if err != nil {
				return err
			}
			if p.Structure == nil {
				return fmt.Errorf("preset %s has no structure", presetID)
			}
			bp = *p.Structure
			if subject == "" {
				subject = string(p.Subject)
			}
		case len(args) == 1:
			if err := readFile(args[0], cmd.InOrStdin(), &bp); err != nil {
				return fmt.Errorf("read blueprint: %w", err)
			}
		default:
			return errors.New("blueprint file or --preset required")
		}
		return printJSON(cmd.OutOrStdout(), exam.FlattenBlueprint(bp, exam.Subject(subject)))
	},
}

type evaluateInput struct {
	Questions []exam.Question                `json:"questions" yaml:"questions"`
	Answers   map[string]exam.Answer         `json:"answers" yaml:"answers"`
	Manual    map[string]float64             `json:"manual,omitempty" yaml:"manual,omitempty"`
	Rubrics   map[string]grading.RubricGrade `json:"rubrics,omitempty" yaml:"rubrics,omitempty"`
	Blueprint *exam.Blueprint                `json:"blueprint,omitempty" yaml:"blueprint,omitempty"`
	Subject   exam.Subject                   `json:"subject,omitempty" yaml:"subject,omitempty"`
}

type evaluateOutput struct {
	grading.Evaluation
	Grade formats.Grade `json:"grade"`
	Label string        `json:"gradeLabel"`
}

var evaluateCmd = &cobra.Command{
	Use:   "evaluate <input-file>",
	Short: "Score a set of answers and compose the final grade",
	Long: "Input holds questions (or a blueprint to flatten), answers keyed by\n" +
		"question id, and optional manual score ratios or rubric grades for\n" +
		"hand-graded items.",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var in evaluateInput
		if err := readFile(args[0], cmd.InOrStdin(), &in); err != nil {
			return fmt.Errorf("read input: %w", err)
		}
		questions := in.Questions
		if in.Blueprint != nil {
			questions = append(questions, exam.FlattenBlueprint(*in.Blueprint, in.Subject).Questions...)
		}
		ev := grading.EvaluateWithOverrides(questions, in.Answers, grading.ManualScores(in.Manual, in.Rubrics))
		g, err := formats.ComposeGrade(gradeProfile(cmd), ev.Achieved, ev.MaxScore)
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), evaluateOutput{Evaluation: ev, Grade: g, Label: g.Label()})
	},
}

var gradeCmd = &cobra.Command{
	Use:   "grade",
	Short: "Compose a 1..10 grade from achieved and maximum points",
	RunE: func(cmd *cobra.Command, args []string) error {
		achieved, _ := cmd.Flags().GetFloat64("achieved")
		maxPoints, _ := cmd.Flags().GetFloat64("max")
		g, err := formats.ComposeGrade(gradeProfile(cmd), achieved, maxPoints)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s (%.2f / %.2f points)\n", g.Label(), g.FinalPoints, g.FinalTotal)
		return nil
	},
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check catalog presets against their exam profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := loadCatalog()
		if err != nil {
			return err
		}
		errs := cat.Validate(cfg.GradeProfile)
		for _, e := range errs {
			fmt.Fprintln(cmd.ErrOrStderr(), e)
		}
		if len(errs) > 0 {
			return fmt.Errorf("%d invalid presets", len(errs))
		}
		fmt.Fprintf(cmd.OutOrStdout(), "catalog %s ok: %d presets\n", cat.Version(), len(cat.Presets("")))
		return nil
	},
}

// gradeProfile is the --profile flag, falling back to GRADE_PROFILE.
func gradeProfile(cmd *cobra.Command) string {
	if p, _ := cmd.Flags().GetString("profile"); p != "" {
		return p
	}
	return cfg.GradeProfile
}

func init() {
	flattenCmd.Flags().String("subject", "", "Subject stamped on the flattened questions")
	flattenCmd.Flags().String("preset", "", "Flatten the structure of this catalog preset")

	evaluateCmd.Flags().String("profile", "", "Exam profile used to compose the grade (overrides GRADE_PROFILE)")

	gradeCmd.Flags().String("profile", "", "Exam profile used to compose the grade (overrides GRADE_PROFILE)")
	gradeCmd.Flags().Float64("achieved", 0, "Achieved points")
	gradeCmd.Flags().Float64("max", 0, "Maximum points")
	_ = gradeCmd.MarkFlagRequired("max")
}
