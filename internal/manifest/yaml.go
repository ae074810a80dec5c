package manifest

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/specialistvlad/stepbuilder/internal/config"
	"gopkg.in/yaml.v3"
)

// loadYAML decodes one YAML manifest strictly and records the lines of its
// containers and goals.
func loadYAML(ctx context.Context, path string) (*config.Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}

	var doc document
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse error in %s: %w", path, err)
	}

	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("parse error in %s: %w", path, err)
	}
	return doc.translate(ctx, path, yamlPositions(&root))
}

func yamlPositions(root *yaml.Node) positions {
	var pos positions
	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 {
		return pos
	}
	for _, c := range sequence(root.Content[0], "containers") {
		pos.containers = append(pos.containers, c.Line)
		var goals []int
		for _, g := range sequence(c, "goals") {
			goals = append(goals, g.Line)
		}
		pos.goals = append(pos.goals, goals)
	}
	return pos
}

// sequence returns the items of the sequence stored under key in mapping.
func sequence(mapping *yaml.Node, key string) []*yaml.Node {
	if mapping.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		if mapping.Content[i].Value == key && mapping.Content[i+1].Kind == yaml.SequenceNode {
			return mapping.Content[i+1].Content
		}
	}
	return nil
}
