// Package main provides the groupme CLI application.
package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/spf13/cobra"
)

// uploadCmd pushes an image file to the media service and prints the hosted
// URL, ready to be used in an image attachment.
var uploadCmd = &cobra.Command{
	Use:   "upload <file>",
	Short: "Upload an image to the media service",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newService()
		if err != nil {
			return err
		}
		content, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		image, err := svc.UploadImage(cmd.Context(), content, http.DetectContentType(content))
		if err != nil {
			return err
		}
		fmt.Println(image.Payload.URL)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(uploadCmd)
}
