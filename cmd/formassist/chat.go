package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/cloudwego/eino/adk"
	"github.com/cloudwego/eino/schema"
	"github.com/google/uuid"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/tbxark/formassist/agent"
	"github.com/tbxark/formassist/record"
)

func newChatCommand(opts *rootOptions) *cobra.Command {
	var sessionKey, formID string
	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Fill in a form interactively from the terminal",
		Long: `Start a terminal conversation with the assistant.

Type /data to show the fields collected so far, /reset to start over and
/quit to leave.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			a, err := newApp(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			if sessionKey == "" {
				sessionKey = uuid.NewString()
			}
			return runChat(cmd.Context(), a, sessionKey, formID, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVarP(&sessionKey, "session", "s", "", "Session key (random when empty)")
	cmd.Flags().StringVarP(&formID, "form", "f", "", "Form identifier, list them with: formassist forms")
	return cmd
}

func runChat(ctx context.Context, a *app, sessionKey, formID string, in io.Reader, out io.Writer) error {
	formAgent := agent.NewAgent(
		"FormAssist",
		"An assistant that collects banking form fields through conversation",
		a.engine,
	)
	runner := adk.NewRunner(ctx, adk.RunnerConfig{
		Agent: formAgent,
	})
	ctx = agent.WithSessionKey(ctx, sessionKey)
	ctx = agent.WithFormID(ctx, formID)

	send := func(text string) error {
		iter := runner.Run(ctx, []adk.Message{schema.UserMessage(text)})
		for {
			event, ok := iter.Next()
			if !ok {
				return nil
			}
			if event.Err != nil {
				return event.Err
			}
			msg, err := event.Output.MessageOutput.GetMessage()
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(out, "\nAssistant: %s\n", msg.Content)
			if res, ok := event.Output.CustomizedOutput.(*agent.TurnResult); ok && res.Complete {
				_, _ = fmt.Fprintln(out, "\nForm complete:")
				printRecord(out, res.Fields)
			}
		}
	}

	_, _ = fmt.Fprintf(out, "Session %s\n", sessionKey)
	if err := send(""); err != nil {
		return err
	}

	reader := bufio.NewReader(in)
	for {
		_, _ = fmt.Fprint(out, "\nYou: ")
		line, err := reader.ReadString('\n')
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}
		input := strings.TrimSpace(line)
		switch input {
		case "":
			continue
		case "/quit", "/exit":
			return nil
		case "/data":
			rec, err := a.service.GetAccumulatedRecord(ctx, sessionKey)
			if err != nil || len(rec) == 0 {
				_, _ = fmt.Fprintln(out, "No form data collected yet.")
				continue
			}
			printRecord(out, rec)
			continue
		case "/reset":
			if err := a.service.ResetSession(ctx, sessionKey); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(out, "Conversation reset.")
			if err := send(""); err != nil {
				return err
			}
			continue
		}
		if err := send(input); err != nil {
			_, _ = fmt.Fprintf(out, "Error: %v\n", err)
		}
	}
}

func printRecord(out io.Writer, rec record.Record) {
	table := tablewriter.NewWriter(out)
	table.Header("Field", "Value")
	for _, key := range rec.Keys() {
		_ = table.Append(key, rec[key])
	}
	_ = table.Render()
}
