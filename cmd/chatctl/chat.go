package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/suPer8Hu/job-assistant/internal/chat"
)

var sessionID string

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive conversation",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		a, err := openApp(ctx)
		if err != nil {
			return err
		}
		defer a.Close()

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "Type 'exit' or press Ctrl+C to leave.")

		session := sessionID
		for {
			prompt := promptui.Prompt{Label: "you"}
			line, err := prompt.Run()
			if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
				return nil
			}
			if err != nil {
				return err
			}

			line = strings.TrimSpace(line)
			switch line {
			case "":
				continue
			case "exit", "quit":
				return nil
			}

			reply, err := a.ChatSvc.SendMessage(ctx, chat.SendInput{Message: line, SessionID: session})
			if err != nil {
				return err
			}
			session = reply.SessionID
			printReply(out, reply)
		}
	},
}

var askCmd = &cobra.Command{
	Use:   "ask <message>",
	Short: "Send a single message and print the reply",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := openApp(ctx)
		if err != nil {
			return err
		}
		defer a.Close()

		reply, err := a.ChatSvc.SendMessage(ctx, chat.SendInput{
			Message:   strings.Join(args, " "),
			SessionID: sessionID,
		})
		if err != nil {
			return err
		}
		printReply(cmd.OutOrStdout(), reply)
		fmt.Fprintf(cmd.OutOrStdout(), "\nsession: %s\n", reply.SessionID)
		return nil
	},
}

func init() {
	for _, c := range []*cobra.Command{chatCmd, askCmd} {
		c.Flags().StringVar(&sessionID, "session", "", "continue an existing session")
	}
}

func printReply(w io.Writer, r *chat.Reply) {
	fmt.Fprintf(w, "\nbot> %s\n", r.Message)
	for _, j := range r.Jobs {
		fmt.Fprintf(w, "  [%d] %s, %s (%s)\n", j.ID, j.Title, j.Company, j.Location)
	}
	if len(r.Suggestions) > 0 {
		fmt.Fprintf(w, "  try: %s\n", strings.Join(r.Suggestions, " | "))
	}
	fmt.Fprintln(w)
}
