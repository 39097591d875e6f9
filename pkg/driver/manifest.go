package driver

import (
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/Masterminds/semver"
	"github.com/go-git/go-billy/v5"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// EngineVersion is matched against the `engine` constraint of fixtures.
const EngineVersion = "0.4.0"

// ManifestFile marks a directory as a fixture.
const ManifestFile = "manifest.yml"

const defaultEntry = "main.js"

// Manifest describes one fixture: the script to run and what it must produce.
type Manifest struct {
	Description string      `yaml:"description"`
	Entry       string      `yaml:"entry"`
	Strict      bool        `yaml:"strict"`
	Engine      string      `yaml:"engine"`
	Skip        string      `yaml:"skip"`
	Expect      Expectation `yaml:"expect"`

	constraint *semver.Constraints
}

// Expectation lists the checks applied to a run. Unset fields are not
// checked.
type Expectation struct {
	Result *string  `yaml:"result"`
	Stdout []string `yaml:"stdout"`
	Error  string   `yaml:"error"`
}

// LoadManifest reads dir/manifest.yml from fs.
func LoadManifest(fs billy.Filesystem, dir string) (*Manifest, error) {
	name := path.Join(dir, ManifestFile)
	file, err := fs.Open(name)
	if err != nil {
		return nil, errors.Wrapf(err, "manifest: open %s", name)
	}
	defer file.Close()

	manifest, err := decodeManifest(file)
	if err != nil {
		return nil, errors.Wrapf(err, "manifest: %s", name)
	}
	return manifest, nil
}

func decodeManifest(r io.Reader) (*Manifest, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)

	var m Manifest
	if err := decoder.Decode(&m); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("manifest is empty")
		}
		return nil, err
	}
	if m.Entry == "" {
		m.Entry = defaultEntry
	}
	if err := m.validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

func (m *Manifest) validate() error {
	errs := ValidationError{Subject: "manifest"}
	switch ext := path.Ext(m.Entry); ext {
	case ".js", ".json":
	default:
		errs.Issues = append(errs.Issues, fmt.Sprintf("entry %q must be a .js or .json file", m.Entry))
	}
	if path.IsAbs(m.Entry) || strings.HasPrefix(path.Clean(m.Entry), "..") {
		errs.Issues = append(errs.Issues, fmt.Sprintf("entry %q must stay inside the fixture directory", m.Entry))
	}
	if m.Engine != "" {
		constraint, err := semver.NewConstraint(m.Engine)
		if err != nil {
			errs.Issues = append(errs.Issues, fmt.Sprintf("engine %q: %v", m.Engine, err))
		}
		m.constraint = constraint
	}
	if m.Expect.Result != nil && m.Expect.Error != "" {
		errs.Issues = append(errs.Issues, "expect.result and expect.error are mutually exclusive")
	}
	if len(errs.Issues) > 0 {
		return &errs
	}
	return nil
}

// SupportsEngine reports whether version satisfies the engine constraint.
// Fixtures without a constraint run on every engine.
func (m *Manifest) SupportsEngine(version string) (bool, error) {
	if m.constraint == nil {
		return true, nil
	}
	v, err := semver.NewVersion(version)
	if err != nil {
		return false, errors.Wrapf(err, "engine version %q", version)
	}
	return m.constraint.Check(v), nil
}
