// ./internal/arch/arch_test.go
package arch

import (
	"bytes"
	"encoding/json"
	"io"
	"os/exec"
	"strings"
	"testing"
)

type pkg struct {
	ImportPath string
	Imports    []string
	Standard   bool
}

// frontEnd is everything that parses flags or owns a process.
var frontEnd = []string{
	"cdmec/internal/app", "cdmec/internal/appcore", "cdmec/internal/appshell",
	"cdmec/internal/cli", "cdmec/internal/collectcli", "cdmec/internal/statscli",
	"cdmec/internal/signaturecli", "cdmec/internal/collectapp", "cdmec/internal/statsapp",
	"cdmec/internal/signatureapp", "cdmec/cmd/",
}

func with(extra ...string) []string { return append(append([]string{}, frontEnd...), extra...) }

// matches treats a trailing slash as a subtree and anything else as one package.
func matches(dep, ban string) bool {
	if strings.HasSuffix(ban, "/") {
		return strings.HasPrefix(dep, ban)
	}
	return dep == ban
}

func TestImportBoundaries(t *testing.T) {
	cmd := exec.Command("go", "list", "-json", "./...")
	var out bytes.Buffer
	cmd.Stdout = &out
	if err := cmd.Run(); err != nil {
		t.Fatalf("go list: %v", err)
	}
	dec := json.NewDecoder(&out)

	bans := map[string][]string{
		// The resolver is pure: no I/O collaborators.
		"cdmec/internal/engine": with(
			"cdmec/internal/pipeline", "cdmec/internal/search", "cdmec/internal/writers",
			"cdmec/internal/output", "cdmec/internal/store", "cdmec/internal/artifact",
			"cdmec/internal/config", "cdmec/internal/stats",
		),
		"cdmec/internal/hit": with(
			"cdmec/internal/engine", "cdmec/internal/pipeline", "cdmec/internal/search",
			"cdmec/internal/output",
		),
		"cdmec/internal/pipeline": with("cdmec/internal/writers", "cdmec/internal/store", "cdmec/internal/artifact"),
		"cdmec/internal/writers":  with("cdmec/internal/pipeline", "cdmec/internal/store"),
		"cdmec/internal/output":   with("cdmec/internal/pipeline", "cdmec/internal/writers", "cdmec/internal/store"),
		"cdmec/internal/stats":    with("cdmec/internal/pipeline", "cdmec/internal/store", "cdmec/internal/search"),
		"cdmec/internal/store":    with("cdmec/internal/pipeline", "cdmec/internal/writers"),
		"cdmec/internal/artifact": with("cdmec/internal/pipeline", "cdmec/internal/output"),
		"cdmec/pkg/api":           with("cdmec/internal/"),
	}

	var violations []string
	for {
		var p pkg
		if err := dec.Decode(&p); err == io.EOF {
			break
		} else if err != nil {
			t.Fatalf("decode: %v", err)
		}
		forbidden, ok := bans[p.ImportPath]
		if !ok {
			continue
		}
		for _, dep := range p.Imports {
			if !strings.HasPrefix(dep, "cdmec/") {
				continue
			}
			for _, ban := range forbidden {
				if matches(dep, ban) {
					violations = append(violations, p.ImportPath+" → "+dep)
				}
			}
		}
	}

	if len(violations) > 0 {
		t.Fatalf("import boundary violations:\n  %s", strings.Join(violations, "\n  "))
	}
}
