// Package retrofit implements a one-shot development utility that rewrites
// route-registration source files to insert the admin gate into the handler
// chain of mutating routes, scoped to the admin registration functions so
// the public storefront surface in the same file keeps its open routes. It
// is never part of the running service: it exists to secure endpoint files
// that were written before the gate, without hand-editing each one.
//
// Detection is substring- and regex-based, so it is best-effort by nature.
// It only touches files whose registrations match the expected
// router.Method("path", handler) shape and leaves anything else alone.
package retrofit

import (
	"fmt"
	"log"
	"os"
	"regexp"
	"sort"
	"strings"
)

// Default configuration used by the secureroutes command.
const (
	DefaultMarker     = "middleware.AdminRequired"
	DefaultImportPath = "tireshop/internal/middleware"
	DefaultAdminFunc  = "RegisterAdminRoutes"
)

// DefaultMethods are the HTTP methods guarded by default: mutating methods
// only, so resources with public reads stay partially secured.
var DefaultMethods = []string{"Post", "Put", "Patch", "Delete"}

// Tool rewrites route registration files to pass requests through the admin
// gate.
type Tool struct {
	// Marker is the substring whose presence means the file is already
	// gated; such files are skipped, which makes the tool idempotent.
	Marker string
	// ImportPath is the middleware package imported into rewritten files.
	ImportPath string
	// Methods is the set of fiber route-registration method names to guard.
	Methods []string
	// AdminFunc names the registration function whose body is rewritten.
	// Registrations outside it are the public surface and are never
	// touched.
	AdminFunc string

	registration *regexp.Regexp
}

// New returns a Tool with the default gate marker, import path and method
// set.
func New() *Tool {
	return &Tool{
		Marker:     DefaultMarker,
		ImportPath: DefaultImportPath,
		Methods:    DefaultMethods,
		AdminFunc:  DefaultAdminFunc,
	}
}

// Summary reports what a Run did.
type Summary struct {
	Rewritten int
	Skipped   int
	Missing   int
	Failed    int
}

// Run applies the tool to every path in order. Missing files are logged and
// skipped; rewrite failures are counted so the caller can exit non-zero.
func (t *Tool) Run(paths []string) Summary {
	var s Summary
	for _, path := range paths {
		changed, err := t.Apply(path)
		switch {
		case os.IsNotExist(err):
			log.Printf("secureroutes: %s does not exist, skipping", path)
			s.Missing++
		case err != nil:
			log.Printf("secureroutes: failed to rewrite %s: %v", path, err)
			s.Failed++
		case changed:
			log.Printf("secureroutes: secured %s", path)
			s.Rewritten++
		default:
			log.Printf("secureroutes: %s already secured, skipping", path)
			s.Skipped++
		}
	}
	return s
}

// Apply rewrites a single file. It returns (false, nil) when the file is
// already gated or has no matching registrations, so a second run leaves
// the file byte-for-byte unchanged.
func (t *Tool) Apply(path string) (bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return false, err
	}
	src := string(data)

	if strings.Contains(src, t.Marker) {
		return false, nil
	}

	rewritten := t.insertGate(src)
	if rewritten == src {
		return false, nil
	}

	rewritten, err = t.insertImport(rewritten)
	if err != nil {
		return false, err
	}

	info, err := os.Stat(path)
	if err != nil {
		return false, err
	}
	if err := os.WriteFile(path, []byte(rewritten), info.Mode()); err != nil {
		return false, fmt.Errorf("write %s: %w", path, err)
	}
	return true, nil
}

// insertGate splices the gate handler into every guarded registration of
// the form <router>.<Method>("path", handler...), but only inside the
// bodies of AdminFunc. Registrations in the public RegisterRoutes stay as
// they are; gating those would lock anonymous booking and checkout behind
// the admin surface.
func (t *Tool) insertGate(src string) string {
	if t.registration == nil {
		methods := append([]string(nil), t.Methods...)
		sort.Strings(methods)
		t.registration = regexp.MustCompile(
			`\.(` + strings.Join(methods, "|") + `)\(\s*("(?:[^"\\]|\\.)*")\s*,`)
	}

	var b strings.Builder
	pos := 0
	for {
		start, end, ok := t.adminBody(src, pos)
		if !ok {
			break
		}
		b.WriteString(src[pos:start])
		b.WriteString(t.registration.ReplaceAllString(src[start:end], `.${1}(${2}, `+t.Marker+`,`))
		pos = end
	}
	b.WriteString(src[pos:])
	return b.String()
}

// adminBody locates the next AdminFunc body at or after from and returns
// its half-open span. The body is delimited by brace counting, which, like
// the registration regex, does not parse string literals; good enough for
// the route files this tool targets.
func (t *Tool) adminBody(src string, from int) (int, int, bool) {
	idx := strings.Index(src[from:], t.AdminFunc+"(")
	if idx < 0 {
		return 0, 0, false
	}
	idx += from
	open := strings.Index(src[idx:], "{")
	if open < 0 {
		return 0, 0, false
	}
	open += idx

	depth := 0
	for i := open; i < len(src); i++ {
		switch src[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return open + 1, i, true
			}
		}
	}
	return 0, 0, false
}

// insertImport adds the middleware import unless the file already has it.
// Only the grouped import form is supported; a file without an import block
// is reported as a failure rather than guessed at.
func (t *Tool) insertImport(src string) (string, error) {
	if strings.Contains(src, `"`+t.ImportPath+`"`) {
		return src, nil
	}
	idx := strings.Index(src, "import (")
	if idx < 0 {
		return "", fmt.Errorf("no import block found")
	}
	insertAt := idx + len("import (")
	return src[:insertAt] + "\n\t\"" + t.ImportPath + `"` + src[insertAt:], nil
}
