package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/interviewq/internal/apiclient"
	"github.com/abhisek/interviewq/internal/interview"
	"github.com/abhisek/interviewq/internal/render"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate interview questions once and print them",
	Example: `  interviewq generate --role "Backend Engineer" --level Senior --count 3
  interviewq generate --role SRE --level Mid --topic "Incident response" --show-answers
  interviewq generate --role "Data Scientist" --level Junior --server http://localhost:3000 --plain`,
	RunE: func(cmd *cobra.Command, args []string) error {
		role, _ := cmd.Flags().GetString("role")
		level, _ := cmd.Flags().GetString("level")
		topic, _ := cmd.Flags().GetString("topic")
		count, _ := cmd.Flags().GetInt("count")
		serverURL, _ := cmd.Flags().GetString("server")
		plain, _ := cmd.Flags().GetBool("plain")
		showAnswers, _ := cmd.Flags().GetBool("show-answers")
		strict, _ := cmd.Flags().GetBool("strict-output")

		if level != "" && !slices.Contains(interview.Levels, level) {
			cmd.PrintErrf("note: %q is not one of %s; sending it anyway\n", level, strings.Join(interview.Levels, ", "))
		}

		req := interview.GenerationRequest{
			Role:  role,
			Level: level,
			Topic: topic,
			Count: interview.CountOf(count),
		}

		var (
			questions []interview.QuestionItem
			err       error
		)
		if serverURL != "" {
			questions, err = apiclient.New(serverURL).Generate(cmd.Context(), req)
			var apiErr *apiclient.APIError
			if errors.As(err, &apiErr) {
				err = errors.New(apiErr.Message)
			}
		} else {
			questions, err = generateLocal(cmd, req, strict)
		}
		if err != nil {
			cmd.PrintErrln(render.Error(err.Error()))
			return errSilent
		}

		out := cmd.OutOrStdout()
		if plain {
			fmt.Fprintln(out, render.Plain(questions))
			return nil
		}
		fmt.Fprint(out, render.Styled(questions, render.Options{ShowAnswers: showAnswers}))
		return nil
	},
}

// errSilent marks a failure that has already been reported to the user.
var errSilent = errors.New("")

// generateLocal runs the pipeline in-process. There is no rate limit on
// this path; each invocation is a single request.
func generateLocal(cmd *cobra.Command, req interview.GenerationRequest, strict bool) ([]interview.QuestionItem, error) {
	st, err := openStore(cmd)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	// Pipeline logs stay quiet on the CLI unless a level was asked for.
	logger := slog.Default()
	if !cmd.Flags().Changed("log-level") && os.Getenv("INTERVIEWQ_LOG_LEVEL") == "" {
		logger = slog.New(slog.DiscardHandler)
	}

	provider, err := newEnvProvider(st.EventRepo(), logger)
	if err != nil {
		return nil, err
	}

	ctrl := interview.NewController(interview.Options{
		Completer: interview.NewCompleter(provider),
		Strict:    strict,
		Logger:    logger,
	})
	res := ctrl.Handle(cmd.Context(), "cli", req)
	if !res.OK() {
		return nil, errors.New(res.Err.Message())
	}
	return res.Questions, nil
}

func init() {
	generateCmd.Flags().StringP("role", "r", "", "Job role, e.g. \"Frontend Developer\"")
	generateCmd.Flags().StringP("level", "l", "Mid", "Seniority level ("+strings.Join(interview.Levels, ", ")+")")
	generateCmd.Flags().StringP("topic", "t", "", "Optional topic to focus on")
	generateCmd.Flags().IntP("count", "n", interview.DefaultCount, "Number of questions (1-10)")
	generateCmd.Flags().String("server", "", "Call a running interviewq server instead of the model directly")
	generateCmd.Flags().Bool("plain", false, "Print numbered plain text suitable for copying")
	generateCmd.Flags().Bool("show-answers", false, "Show sample answers")
	generateCmd.Flags().Bool("strict-output", false, "Reject model output whose items lack the expected fields")

	generateCmd.RegisterFlagCompletionFunc("level", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return interview.Levels, cobra.ShellCompDirectiveNoFileComp
	})
	generateCmd.RegisterFlagCompletionFunc("count", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		out := make([]string, len(interview.CountChoices))
		for i, n := range interview.CountChoices {
			out[i] = fmt.Sprint(n)
		}
		return out, cobra.ShellCompDirectiveNoFileComp
	})
}
