package scene

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v2"
)

// Load reads a scene document from a YAML file.
func Load(path string) (*Scene, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open scene file '%s': %w", path, err)
	}
	defer f.Close()

	s, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse scene file '%s': %w", path, err)
	}
	return s, nil
}

// Parse decodes a YAML scene document and normalizes it.
func Parse(r io.Reader) (*Scene, error) {
	s := new(Scene)
	decoder := yaml.NewDecoder(r)
	if err := decoder.Decode(s); err != nil {
		return nil, err
	}
	if err := s.normalize(); err != nil {
		return nil, err
	}
	return s, nil
}

// normalize applies authoring defaults and restores the structural
// invariants the synthesizer relies on: z indices unique and contiguous
// within each node list, derived line lengths populated, colors valid.
func (s *Scene) normalize() error {
	for _, f := range s.Frames {
		if err := checkColor(f.Background); err != nil {
			return fmt.Errorf("frame '%s' background: %w", f.ID, err)
		}
		if err := normalizeNodes(f.ID, f.Nodes); err != nil {
			return err
		}
		for _, variant := range f.Variants {
			if err := normalizeNodes(f.ID, variant); err != nil {
				return err
			}
		}
	}

	for _, t := range s.Transitions {
		if t.Animation == "" {
			t.Animation = AnimationAuto
		}
		if t.Stagger.Mode == "" {
			t.Stagger.Mode = StaggerNone
		}
	}
	return nil
}

func normalizeNodes(frameID string, nodes []*Node) error {
	for _, n := range nodes {
		if err := checkColor(n.Fill); err != nil {
			return fmt.Errorf("node '%s' in frame '%s' fill: %w", n.ID, frameID, err)
		}
		if err := checkColor(n.Stroke); err != nil {
			return fmt.Errorf("node '%s' in frame '%s' stroke: %w", n.ID, frameID, err)
		}
		if n.Type == NodePolyline && n.LineLength == 0 {
			n.LineLength = n.EndpointLength()
		}
	}

	// Reindex z so indices are unique and contiguous, keeping the
	// authored relative order.
	sort.SliceStable(nodes, func(i, j int) bool { return nodes[i].Z < nodes[j].Z })
	for i, n := range nodes {
		n.Z = i
	}
	return nil
}

func checkColor(hex string) error {
	if hex == "" {
		return nil
	}
	if _, err := colorful.Hex(hex); err != nil {
		return fmt.Errorf("invalid color '%s': %w", hex, err)
	}
	return nil
}
