package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/SAP-F-2025/interview-service/internal/models"
	"github.com/SAP-F-2025/interview-service/internal/services"
	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
)

const anyDomain = "Any"

var errExit = errors.New("exit requested")

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run an interview in the terminal",
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := wire(cmd.Context(), wireOptions{forceMemoryStore: true})
		if err != nil {
			return err
		}
		defer a.close()

		err = runInterview(cmd.Context(), a, cmd.OutOrStdout())
		if errors.Is(err, errExit) {
			fmt.Fprintln(cmd.OutOrStdout(), "Interview abandoned.")
			return nil
		}
		return err
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runInterview(ctx context.Context, a *application, out io.Writer) error {
	req, err := promptCandidate(a)
	if err != nil {
		return err
	}

	start, err := a.service.Start(ctx, req)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "\nWelcome %s. %d questions, starting at %s.\n", req.Name, start.TotalQuestions, start.StartingDifficulty)

	question, number := start.Question, start.QuestionNumber
	for question != nil {
		fmt.Fprintf(out, "\nQuestion %d/%d [%s]\n%s\n", number, start.TotalQuestions, question.Difficulty, question.Text)

		answer, err := ask("Your answer", true)
		if err != nil {
			_ = a.service.Abandon(ctx, start.SessionID)
			return err
		}
		submit := &services.SubmitAnswerRequest{Answer: answer}
		if question.FollowUp != "" {
			fmt.Fprintf(out, "Follow-up: %s\n", question.FollowUp)
			followUp, err := ask("Your follow-up answer", true)
			if err != nil {
				_ = a.service.Abandon(ctx, start.SessionID)
				return err
			}
			submit.FollowUpAnswer = &followUp
		}

		resp, err := a.service.SubmitAnswer(ctx, start.SessionID, submit)
		if err != nil {
			return err
		}
		printResult(out, resp)

		question, number = resp.NextQuestion, resp.NextQuestionNumber
		if resp.Status == models.InterviewCompleted {
			break
		}
		if question == nil {
			// bank exhausted at every level; finish with what was answered
			fmt.Fprintln(out, "\nNo more questions available.")
			return printAnalysis(ctx, a, start.SessionID, out, false)
		}
	}

	return printAnalysis(ctx, a, start.SessionID, out, true)
}

func promptCandidate(a *application) (*services.StartInterviewRequest, error) {
	name, err := ask("Your name", false)
	if err != nil {
		return nil, err
	}

	role, err := choose("Role", a.settings.Roles())
	if err != nil {
		return nil, err
	}
	level, err := choose("Experience level", a.settings.ExperienceLevels())
	if err != nil {
		return nil, err
	}

	req := &services.StartInterviewRequest{Name: name, Role: role, ExperienceLevel: level}
	if domains := a.settings.Domains(); len(domains) > 0 {
		domain, err := choose("Domain", append([]string{anyDomain}, domains...))
		if err != nil {
			return nil, err
		}
		if domain != anyDomain {
			req.Domain = domain
		}
	}
	return req, nil
}

func ask(label string, allowEmpty bool) (string, error) {
	prompt := promptui.Prompt{Label: label}
	if !allowEmpty {
		prompt.Validate = func(s string) error {
			if strings.TrimSpace(s) == "" {
				return errors.New("required")
			}
			return nil
		}
	}
	value, err := prompt.Run()
	if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
		return "", errExit
	}
	return strings.TrimSpace(value), err
}

func choose(label string, items []string) (string, error) {
	prompt := promptui.Select{Label: label, Items: items}
	_, value, err := prompt.Run()
	if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
		return "", errExit
	}
	return value, err
}

func printResult(out io.Writer, resp *services.SubmitAnswerResponse) {
	if resp.Result != nil {
		s := resp.Result.Scores
		fmt.Fprintf(out, "Scores: clarity %d, accuracy %d, completeness %d, confidence %d (overall %.2f/5)\n",
			s.Clarity, s.Accuracy, s.Completeness, s.Confidence, resp.Result.Overall)
		if len(resp.Result.Insights.Strengths) > 0 {
			fmt.Fprintf(out, "Strengths: %s\n", strings.Join(resp.Result.Insights.Strengths, "; "))
		}
		if len(resp.Result.Insights.Gaps) > 0 {
			fmt.Fprintf(out, "Gaps: %s\n", strings.Join(resp.Result.Insights.Gaps, "; "))
		}
	}
	if resp.FollowUpQuestion != "" {
		fmt.Fprintf(out, "Something to think about: %s\n", resp.FollowUpQuestion)
	}
}

func printAnalysis(ctx context.Context, a *application, sessionID string, out io.Writer, completed bool) error {
	var analysis models.AggregateAnalysis
	var recommendations, files []string
	if completed {
		resp, err := a.service.Complete(ctx, sessionID)
		if err != nil {
			return err
		}
		analysis, recommendations, files = resp.Analysis, resp.AIRecommendations, resp.ReportFiles
	} else {
		resp, err := a.service.GetResults(ctx, sessionID)
		if err != nil {
			return err
		}
		analysis = resp.Analysis
	}

	fmt.Fprintln(out, "\n=== Interview summary ===")
	if analysis.Summary != nil {
		fmt.Fprintf(out, "Level: %s (%.2f/5 over %d questions)\n%s\n",
			analysis.Summary.OverallLevel, analysis.Summary.Score, analysis.Summary.QuestionsAnswered, analysis.Summary.Interpretation)
	}
	printList(out, "Patterns", analysis.Patterns)
	printList(out, "Recommendations", analysis.Recommendations)
	printList(out, "AI recommendations", recommendations)
	printList(out, "Reports", files)
	return nil
}

func printList(out io.Writer, title string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(out, "%s:\n", title)
	for _, item := range items {
		fmt.Fprintf(out, "  - %s\n", item)
	}
}
