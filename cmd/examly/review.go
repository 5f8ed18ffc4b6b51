package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/m-fukuda/examly/internal/exam"
)

func newReviewCommand() *cobra.Command {
	var userID int64
	var limit int

	command := &cobra.Command{
		Use:   "review",
		Short: "Show the exams most in need of review",
		RunE: func(cmd *cobra.Command, args []string) error {
			if userID <= 0 {
				return fmt.Errorf("--user is required")
			}

			cfg, db, err := openDatabase()
			if err != nil {
				return err
			}
			defer func() {
				_ = db.Close()
			}()

			if limit <= 0 {
				limit = cfg.Review.DefaultQueueLimit
			}

			service := exam.NewExamService(db)
			items, err := service.GetReviewQueue(cmd.Context(), userID, limit)
			if err != nil {
				return fmt.Errorf("service.GetReviewQueue() > %w", err)
			}

			if len(items) == 0 {
				fmt.Println("Nothing to review. Well done!")
				return nil
			}

			urgent := color.New(color.FgRed, color.Bold)
			normal := color.New(color.FgYellow)
			for i, item := range items {
				line := normal
				if item.Priority >= 1.5 {
					line = urgent
				}
				line.Printf("%2d. [%.2f] %s\n", i+1, item.Priority, item.Exam.Title)
				if item.LastSubmitTime != nil && item.LastPercentage != nil {
					fmt.Printf("      last attempt %s (%s%%), %d attempts total\n",
						item.LastSubmitTime.Format("2006-01-02"),
						item.LastPercentage.StringFixed(2),
						item.AttemptCount)
				} else {
					fmt.Println("      never attempted")
				}
			}
			return nil
		},
	}
	command.Flags().Int64Var(&userID, "user", 0, "user id to build the queue for")
	command.Flags().IntVar(&limit, "limit", 0, "maximum number of exams to show")
	return command
}
