// Package main provides the groupme CLI application.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var sendMentions []string

// sendCmd posts a message to a group. Long text is split by the library;
// --mention resolves member names into mention attachments.
var sendCmd = &cobra.Command{
	Use:   "send <group-id> <text>",
	Short: "Send a message to a group",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newService()
		if err != nil {
			return err
		}
		groupID, text := args[0], args[1]

		var sent int
		if len(sendMentions) > 0 {
			messages, err := svc.CreateMessageWithMentions(cmd.Context(), groupID, sendMentions, text)
			if err != nil {
				return err
			}
			sent = len(messages)
		} else {
			messages, err := svc.CreateMessage(cmd.Context(), groupID, text, nil)
			if err != nil {
				return err
			}
			sent = len(messages)
		}
		fmt.Printf("sent %d message(s)\n", sent)
		return nil
	},
}

func init() {
	sendCmd.Flags().StringSliceVar(&sendMentions, "mention", nil, "member names to mention, repeatable")
	rootCmd.AddCommand(sendCmd)
}
