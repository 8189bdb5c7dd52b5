package registry

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strings"

	"github.com/ralt/apprepogen/internal/models"
	"github.com/ralt/apprepogen/internal/scanner"
	"github.com/sirupsen/logrus"
)

// dumpModule executes a descriptor module and prints its public,
// JSON-serializable top-level names as one JSON object.
const dumpModule = `import json, runpy, sys
ns = runpy.run_path(sys.argv[1], run_name="__descriptor__")
out = {}
for k, v in ns.items():
    if k.startswith("_"):
        continue
    try:
        json.dumps(v)
    except (TypeError, ValueError):
        continue
    out[k] = v
json.dump(out, sys.stdout)
`

// LoadPythonPackage executes a Python descriptor module with the given
// interpreter and collects the fields it declares at module level.
func LoadPythonPackage(ctx context.Context, python, path string) (string, models.Descriptor, error) {
	pkgID := scanner.PackageID(path)

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, python, "-c", dumpModule, path)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	logrus.Debugf("Loading python descriptor %s with %s", path, python)
	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg != "" {
			return pkgID, nil, parseError(pkgID, fmt.Errorf("failed to load %s: %w: %s", path, err, msg))
		}
		return pkgID, nil, parseError(pkgID, fmt.Errorf("failed to load %s: %w", path, err))
	}

	var content map[string]interface{}
	if err := json.Unmarshal(stdout.Bytes(), &content); err != nil {
		return pkgID, nil, parseError(pkgID, fmt.Errorf("failed to decode fields of %s: %w", path, err))
	}

	return pkgID, models.Descriptor(content), nil
}
