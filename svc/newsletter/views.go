package newsletter

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

const confirmationSubject = "Welcome!"

func confirmationText(link string) string {
	return fmt.Sprintf("Welcome to our newsletter!\nVisit %s to confirm your subscription.", link)
}

func confirmationHTML(name, link string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w,
			`<p>Hi %s,</p><p>Welcome to our newsletter!<br />Click <a href="%s">here</a> to confirm your subscription.</p>`,
			templ.EscapeString(name),
			templ.EscapeString(string(templ.URL(link))),
		)
		return err
	})
}
