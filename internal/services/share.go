package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"fitness-tracker/internal/social"
)

const milestonePrefix = "Just reached a new fitness milestone! "

type ShareService struct {
	poster social.Poster
	out    io.Writer
}

func NewShareService(poster social.Poster) *ShareService {
	return &ShareService{poster: poster, out: os.Stdout}
}

func (ss *ShareService) SetOutput(w io.Writer) {
	ss.out = w
}

// MilestoneMessage builds the status text posted for progress.
func MilestoneMessage(progress string) string {
	return milestonePrefix + progress
}

// ShareProgress posts the milestone message once. Failures are printed with
// the response body and returned; they never panic.
func (ss *ShareService) ShareProgress(ctx context.Context, progress string) error {
	err := ss.poster.Post(ctx, MilestoneMessage(progress))
	if err != nil {
		detail := err.Error()
		var rejected *social.RejectedError
		if errors.As(err, &rejected) {
			detail = rejected.Body
		}
		fmt.Fprintln(ss.out, "Error sharing progress:", detail)
		log.Printf("❌ Failed to share progress: %v", err)
		return err
	}

	fmt.Fprintln(ss.out, "Progress shared successfully!")
	log.Printf("✅ Progress shared")
	return nil
}
