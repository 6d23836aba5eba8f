package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/campus-hub/campus-registry/internal/application/command"
	"github.com/campus-hub/campus-registry/pkg/logger"
)

func newRegisterCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "register <student> <course>",
		Short: "Register a student for a course",
		Long: "Register a student for a course. Both arguments accept a " +
			"natural id or an exact name. Registering twice is a no-op.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := app.Register.Handle(cmd.Context(), command.RegisterStudentCommand{
				StudentRef: args[0],
				CourseRef:  args[1],
			})
			if err != nil {
				return err
			}

			if res.AlreadyRegistered {
				fmt.Fprintf(cmd.OutOrStdout(), "%s is already registered for %s\n",
					res.Student.Name, res.Course.CourseName)
				return nil
			}

			app.Logger.Info("student registered",
				logger.StudentID(res.Student.StudentID),
				logger.CourseID(res.Course.CourseID))
			fmt.Fprintf(cmd.OutOrStdout(), "registered %s for %s\n",
				res.Student.Name, res.Course.CourseName)
			return nil
		},
	}
}

func newAssignCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "assign <course> <instructor>",
		Short: "Assign an instructor to a course",
		Long: "Assign an instructor to a course. Both arguments accept a " +
			"natural id or an exact name. Assigning over an existing " +
			"instructor replaces it.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := app.Assign.Handle(cmd.Context(), command.AssignInstructorCommand{
				CourseRef:     args[0],
				InstructorRef: args[1],
			})
			if err != nil {
				return err
			}

			app.Logger.Info("instructor assigned",
				logger.CourseID(res.Course.CourseID),
				logger.InstructorID(res.Instructor.InstructorID))
			if res.Replaced {
				fmt.Fprintf(cmd.OutOrStdout(), "%s now teaches %s (replaced previous instructor)\n",
					res.Instructor.Name, res.Course.CourseName)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "%s now teaches %s\n",
					res.Instructor.Name, res.Course.CourseName)
			}
			return nil
		},
	}
}
