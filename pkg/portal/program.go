package portal

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// loginAnchorSelector matches the portal's login anchor, whose text carries
// the logged-in student's account name, e.g. "vorname.BSCI_nachname".
const loginAnchorSelector = `a[href="/de-ch/service-sites/login"]`

// ExtractStudyProgram pulls the study program code out of a MyCampus portal
// page. The account name in the login anchor embeds the program between the
// first period and the following underscore, prefixed with "BSC".
func ExtractStudyProgram(r io.Reader) (string, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return "", err
	}

	text := strings.TrimSpace(doc.Find(loginAnchorSelector).First().Text())
	if text == "" {
		return "", fmt.Errorf("login anchor not found on portal page")
	}

	parts := strings.Split(text, ".")
	if len(parts) < 2 {
		return "", fmt.Errorf("unexpected account name %q on portal page", text)
	}
	program := strings.Split(parts[1], "_")[0]
	program = strings.ReplaceAll(program, "BSC", "")
	if program == "" {
		return "", fmt.Errorf("no study program in account name %q", text)
	}

	return program, nil
}
