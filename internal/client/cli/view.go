package cli

import (
	"fmt"
	"strings"

	"github.com/dmitrijs2005/taskpad/internal/client/engine"
)

func renderView(v engine.ViewModel) string {
	var b strings.Builder

	switch v.Status.Kind {
	case engine.StatusSuccess:
		fmt.Fprintf(&b, "OK: %s\n", v.Status.Message)
	case engine.StatusFailure:
		fmt.Fprintf(&b, "ERROR: %s\n", v.Status.Message)
	}

	if v.Busy {
		b.WriteString("(working...)\n")
	}

	if len(v.Tasks) == 0 {
		b.WriteString("No tasks.")
		return b.String()
	}

	for i, t := range v.Tasks {
		mark := " "
		if t.Completed {
			mark = "x"
		}
		fmt.Fprintf(&b, "%2d. [%s] %s  (%s)\n", i+1, mark, t.Title, t.ID)
		if t.AttachmentURL != nil {
			fmt.Fprintf(&b, "      attachment: %s\n", *t.AttachmentURL)
		}
		if t.ID == v.EditingID {
			fmt.Fprintf(&b, "      editing: title=%q", v.EditDraft.Title)
			if v.EditDraft.File != nil {
				fmt.Fprintf(&b, " file=%s", v.EditDraft.File.Name)
			}
			b.WriteString("\n")
		}
	}

	return strings.TrimRight(b.String(), "\n")
}
