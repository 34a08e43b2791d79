// Package main provides the groupme CLI application.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// groupsCmd lists the active groups for the configured token.
var groupsCmd = &cobra.Command{
	Use:   "groups",
	Short: "List your groups",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newService()
		if err != nil {
			return err
		}
		groups, err := svc.IndexGroups(cmd.Context(), 0, 0, true)
		if err != nil {
			return err
		}
		for _, g := range groups {
			fmt.Printf("%s\t%s\n", g.ID, g.Name)
		}
		return nil
	},
}

// meCmd prints the authenticated user's profile.
var meCmd = &cobra.Command{
	Use:   "me",
	Short: "Show the authenticated user",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newService()
		if err != nil {
			return err
		}
		me, err := svc.GetMe(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Printf("%s (%s)\n", me.Name, me.ID)
		if me.Email != "" {
			fmt.Println(me.Email)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(groupsCmd)
	rootCmd.AddCommand(meCmd)
}
