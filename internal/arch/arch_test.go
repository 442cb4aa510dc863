// ===// ./internal/arch/arch_test.go
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

func TestImportBoundaries(t *testing.T) {
	cmd := exec.Command("go", "list", "-json", "./...")
	var out bytes.Buffer
	cmd.Stdout = &out
	if err := cmd.Run(); err != nil {
		t.Fatalf("go list: %v", err)
	}
	dec := json.NewDecoder(&out)

	bans := map[string][]string{
		// core/ is the library; it never reaches into the application.
		"bfgraph/core/": {"bfgraph/internal/", "bfgraph/cmd/"},
		"bfgraph/core/kmer": {
			"bfgraph/core/oracle", "bfgraph/core/contigs", "bfgraph/core/engine", "bfgraph/core/reads",
		},
		"bfgraph/core/engine": {"bfgraph/core/reads"},
		"bfgraph/internal/pipeline": {
			"bfgraph/internal/app", "bfgraph/internal/cli", "bfgraph/internal/writers",
			"bfgraph/internal/output", "bfgraph/cmd/",
		},
		"bfgraph/internal/writers": {
			"bfgraph/internal/app", "bfgraph/internal/cli",
			"bfgraph/internal/pipeline", "bfgraph/cmd/",
		},
		"bfgraph/internal/output": {
			"bfgraph/internal/app", "bfgraph/internal/cli",
			"bfgraph/internal/pipeline", "bfgraph/internal/writers", "bfgraph/cmd/",
		},
		"bfgraph/internal/graph": {
			"bfgraph/internal/app", "bfgraph/internal/cli", "bfgraph/internal/output",
			"bfgraph/internal/writers", "bfgraph/cmd/",
		},
		"bfgraph/pkg/api": {"bfgraph/core/", "bfgraph/internal/", "bfgraph/cmd/"},
	}

	var violations []string
	for {
		var p pkg
		if err := dec.Decode(&p); err == io.EOF {
			break
		} else if err != nil {
			t.Fatalf("decode: %v", err)
		}
		if !strings.HasPrefix(p.ImportPath, "bfgraph/") {
			continue
		}
		imp := p.ImportPath
		for prefix, forbidden := range bans {
			if !strings.HasPrefix(imp, prefix) {
				continue
			}
			for _, dep := range p.Imports {
				if !strings.HasPrefix(dep, "bfgraph/") {
					continue
				}
				for _, ban := range forbidden {
					if strings.HasPrefix(dep, ban) {
						violations = append(violations, imp+" → "+dep)
					}
				}
			}
		}
	}

	if len(violations) > 0 {
		t.Fatalf("import boundary violations:\n  %s", strings.Join(violations, "\n  "))
	}
}
