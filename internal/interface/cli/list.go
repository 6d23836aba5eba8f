package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/campus-hub/campus-registry/internal/application/query"
)

func newListCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:       "list <students|instructors|courses|enrollments>",
		Short:     "List all records of one kind",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"students", "instructors", "courses", "enrollments"},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			switch args[0] {
			case "students":
				students, err := app.Lists.Students(ctx)
				if err != nil {
					return err
				}
				for _, s := range students {
					fmt.Fprintf(out, "%s\t%s\t%d\t%s\t[%s]\n",
						s.StudentID, s.Name, s.Age, s.Email, strings.Join(s.RegisteredCourses, ", "))
				}
				fmt.Fprintf(out, "%d students\n", len(students))

			case "instructors":
				instructors, err := app.Lists.Instructors(ctx)
				if err != nil {
					return err
				}
				for _, i := range instructors {
					fmt.Fprintf(out, "%s\t%s\t%d\t%s\t[%s]\n",
						i.InstructorID, i.Name, i.Age, i.Email, strings.Join(i.AssignedCourses, ", "))
				}
				fmt.Fprintf(out, "%d instructors\n", len(instructors))

			case "courses":
				courses, err := app.Lists.Courses(ctx)
				if err != nil {
					return err
				}
				for _, c := range courses {
					instructor := c.InstructorID
					if instructor == "" {
						instructor = "-"
					}
					fmt.Fprintf(out, "%s\t%s\t%s\t[%s]\n",
						c.CourseID, c.CourseName, instructor, strings.Join(c.EnrolledStudents, ", "))
				}
				fmt.Fprintf(out, "%d courses\n", len(courses))

			case "enrollments":
				enrollments, err := app.Lists.Enrollments(ctx)
				if err != nil {
					return err
				}
				for _, e := range enrollments {
					fmt.Fprintf(out, "%s (%s)\t->\t%s (%s)\n",
						e.StudentName, e.StudentID, e.CourseName, e.CourseID)
				}
				fmt.Fprintf(out, "%d enrollments\n", len(enrollments))

			default:
				return fmt.Errorf("unknown kind %q", args[0])
			}

			return nil
		},
	}

	return cmd
}

func newShowCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show one record by its natural id",
	}

	student := &cobra.Command{
		Use:   "student <student-id>",
		Short: "Show one student",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.Records.Student(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%d\t%s\t[%s]\n",
				s.StudentID, s.Name, s.Age, s.Email, strings.Join(s.RegisteredCourses, ", "))
			return nil
		},
	}

	instructor := &cobra.Command{
		Use:   "instructor <instructor-id>",
		Short: "Show one instructor",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			i, err := app.Records.Instructor(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%d\t%s\t[%s]\n",
				i.InstructorID, i.Name, i.Age, i.Email, strings.Join(i.AssignedCourses, ", "))
			return nil
		},
	}

	course := &cobra.Command{
		Use:   "course <course-id>",
		Short: "Show one course",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := app.Records.Course(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			instructor := c.InstructorID
			if instructor == "" {
				instructor = "-"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\t[%s]\n",
				c.CourseID, c.CourseName, instructor, strings.Join(c.EnrolledStudents, ", "))
			return nil
		},
	}

	cmd.AddCommand(student, instructor, course)
	return cmd
}

func newSearchCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "search <term>",
		Short: "Search records by name substring or exact id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := app.Search.Handle(cmd.Context(), query.SearchQuery{Term: args[0]})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, s := range res.Students {
				fmt.Fprintf(out, "student\t%s\t%s\n", s.StudentID, s.Name)
			}
			for _, i := range res.Instructors {
				fmt.Fprintf(out, "instructor\t%s\t%s\n", i.InstructorID, i.Name)
			}
			for _, c := range res.Courses {
				fmt.Fprintf(out, "course\t%s\t%s\n", c.CourseID, c.CourseName)
			}
			fmt.Fprintf(out, "%d matches\n", res.Total())
			return nil
		},
	}
}
