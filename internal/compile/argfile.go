package compile

import (
	"os"
	"strings"
)

// WriteArgFile materializes compiler arguments into a temporary file so the
// command line stays under OS length limits. One argument per line, quoted
// per the compiler's argfile syntax. The caller removes the file when the
// phase is done; files are tiny and the process short-lived.
func WriteArgFile(args []string) (string, error) {
	f, err := os.CreateTemp("", "ktbuild-args-*.txt")
	if err != nil {
		return "", err
	}
	var b strings.Builder
	for _, arg := range args {
		b.WriteString(quoteArg(arg))
		b.WriteByte('\n')
	}
	if _, err := f.WriteString(b.String()); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", err
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", err
	}
	return f.Name(), nil
}

// quoteArg escapes backslashes and double quotes, wrapping the argument in
// quotes when it contains whitespace. The compiler's argfile reader treats
// backslash as an escape character, so Windows paths must be escaped too.
func quoteArg(arg string) string {
	needsQuoting := strings.ContainsAny(arg, " \t\"\\")
	if !needsQuoting {
		return arg
	}
	escaped := strings.ReplaceAll(arg, `\`, `\\`)
	escaped = strings.ReplaceAll(escaped, `"`, `\"`)
	return `"` + escaped + `"`
}
