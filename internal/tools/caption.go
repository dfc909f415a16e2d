package tools

import "fmt"

// CaptionPrompt renders the instruction text for captioning an image. The
// image itself travels as a separate content part in the model request.
func CaptionPrompt(style string) string {
	if style == "" {
		style = "concise"
	}
	return fmt.Sprintf("Generate a %s caption for this image. The caption should be appropriate, engaging, and match the image content.", style)
}
