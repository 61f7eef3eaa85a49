package registry

import (
	"encoding/json"
	"io/fs"
	"path"

	"github.com/goccy/go-yaml"

	"github.com/agentstation/foiafix/pkg/errors"
)

// Candidate file names for each table, in lookup order. The drupal-/xml-
// prefixed names are the ones produced by the CMS export scripts.
var (
	agencyFiles       = []string{"agencies.json", "agencies.yaml", "drupal-agencies.json"}
	componentFiles    = []string{"agency-components.json", "agency-components.yaml", "drupal-agency-components.json"}
	agencyFixFiles    = []string{"agency-fixes.json", "agency-fixes.yaml", "xml-agency-fixes.json"}
	componentFixFiles = []string{"agency-component-fixes.json", "agency-component-fixes.yaml", "xml-agency-component-fixes.json"}
)

// Load reads the registry tables from fsys. The agency and component tables
// are required; the fix tables are optional.
func Load(fsys fs.FS) (*Registry, error) {
	var agencies []Agency
	if found, err := readTable(fsys, agencyFiles, &agencies); err != nil {
		return nil, err
	} else if !found {
		return nil, errors.NewIOError("read", agencyFiles[0], fs.ErrNotExist)
	}

	var components []Component
	if found, err := readTable(fsys, componentFiles, &components); err != nil {
		return nil, err
	} else if !found {
		return nil, errors.NewIOError("read", componentFiles[0], fs.ErrNotExist)
	}

	agencyFixes := AgencyFixes{}
	if _, err := readTable(fsys, agencyFixFiles, &agencyFixes); err != nil {
		return nil, err
	}

	componentFixes := ComponentFixes{}
	if _, err := readTable(fsys, componentFixFiles, &componentFixes); err != nil {
		return nil, err
	}

	return New(agencies, components,
		WithAgencyFixes(agencyFixes),
		WithComponentFixes(componentFixes),
	), nil
}

// readTable decodes the first existing candidate into v.
func readTable(fsys fs.FS, candidates []string, v any) (bool, error) {
	for _, name := range candidates {
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return false, errors.WrapIO("read", name, err)
		}

		switch path.Ext(name) {
		case ".yaml", ".yml":
			if err := yaml.Unmarshal(data, v); err != nil {
				return false, errors.WrapParse("yaml", name, err)
			}
		default:
			if err := json.Unmarshal(data, v); err != nil {
				return false, errors.WrapParse("json", name, err)
			}
		}
		return true, nil
	}
	return false, nil
}
