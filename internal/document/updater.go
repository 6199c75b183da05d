// Package document rewrites the repository table embedded in the project
// README. Only the table rows between two fixed markers and the
// "Last updated" stamp are touched; everything else is left byte-for-byte.
package document

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/naka-gawa/solana-repo-tracker/internal/domain"
	"github.com/naka-gawa/solana-repo-tracker/internal/util/file"
)

const (
	// DefaultPath is the document used when none is given.
	DefaultPath = "README.md"

	// HeaderRow is the literal table header that opens the managed region.
	HeaderRow = "| Project | Description | Repo | Stars | Contributors | Last Activity | Category |"

	// Terminator is the literal text that closes the managed region.
	Terminator = "\n\n- Stars/Contributors:"

	stampLayout = "2006-01-02"
)

var (
	// ErrNotFound is returned when the document does not exist.
	ErrNotFound = errors.New("document not found")

	// ErrAnchorNotFound is returned when the table markers are missing.
	ErrAnchorNotFound = errors.New("table anchor not found")

	stampPattern = regexp.MustCompile(`Last updated: \d{4}-\d{2}-\d{2}`)
)

// Result describes a successful update.
type Result struct {
	Rows         int
	NewRows      int
	StampUpdated bool
}

// Updater rewrites the table in the document at Path.
type Updater struct {
	path string
	now  func() time.Time
}

// NewUpdater creates an Updater for the document at path. now supplies the
// date written into the stamp; nil means time.Now.
func NewUpdater(path string, now func() time.Time) *Updater {
	if path == "" {
		path = DefaultPath
	}
	if now == nil {
		now = time.Now
	}
	return &Updater{path: path, now: now}
}

// Path returns the document path.
func (u *Updater) Path() string {
	return u.path
}

// Preflight reports whether the document can be read.
func (u *Updater) Preflight() error {
	_, err := u.read()
	return err
}

func (u *Updater) read() (string, error) {
	data, err := os.ReadFile(u.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", ErrNotFound, u.path)
		}
		return "", fmt.Errorf("failed to read %s: %w", u.path, err)
	}
	return string(data), nil
}

// Update renders repos into the document table and refreshes the date stamp.
// Nothing is written when the document or its anchors are missing.
func (u *Updater) Update(repos []domain.TrackedRepository) (Result, error) {
	doc, err := u.read()
	if err != nil {
		return Result{}, err
	}

	rows := Rows(repos)
	updated, err := Splice(doc, strings.Join(rows, "\n"))
	if err != nil {
		return Result{}, fmt.Errorf("failed to update %s: %w", u.path, err)
	}
	updated, stamped := Stamp(updated, u.now())

	if err := file.WriteAtomic(u.path, []byte(updated)); err != nil {
		return Result{}, fmt.Errorf("failed to write %s: %w", u.path, err)
	}

	res := Result{Rows: len(rows), StampUpdated: stamped}
	for _, r := range repos {
		if r.IsNew {
			res.NewRows++
		}
	}
	return res, nil
}

// Splice replaces the rows between the table separator and the terminator
// with body. body holds the rows joined by newlines, without a trailing one.
func Splice(doc, body string) (string, error) {
	head := strings.Index(doc, HeaderRow)
	if head < 0 {
		return "", fmt.Errorf("%w: header row", ErrAnchorNotFound)
	}

	// The separator row is the line right after the header.
	afterHeader := head + len(HeaderRow)
	if !strings.HasPrefix(doc[afterHeader:], "\n|") {
		return "", fmt.Errorf("%w: separator row", ErrAnchorNotFound)
	}
	sepStart := afterHeader + 1
	sepLen := strings.IndexByte(doc[sepStart:], '\n')
	if sepLen < 0 {
		return "", fmt.Errorf("%w: terminator", ErrAnchorNotFound)
	}
	bodyStart := sepStart + sepLen

	end := strings.Index(doc[bodyStart:], Terminator)
	if end < 0 {
		return "", fmt.Errorf("%w: terminator", ErrAnchorNotFound)
	}
	bodyEnd := bodyStart + end

	var b strings.Builder
	b.Grow(len(doc) - (bodyEnd - bodyStart) + len(body) + 1)
	b.WriteString(doc[:bodyStart])
	if body != "" {
		b.WriteByte('\n')
		b.WriteString(body)
	}
	b.WriteString(doc[bodyEnd:])
	return b.String(), nil
}

// Stamp rewrites every "Last updated: YYYY-MM-DD" line to date.
// ok is false when the document has no stamp.
func Stamp(doc string, date time.Time) (string, bool) {
	if !stampPattern.MatchString(doc) {
		return doc, false
	}
	return stampPattern.ReplaceAllLiteralString(doc, "Last updated: "+date.Format(stampLayout)), true
}
