package source

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/0xPuncker/taskboard/pkg/types"
)

// GroupConfigSource reads a board config that declares owner groups and the
// tasks assigned to them. Files ending in .json are parsed as JSON, anything
// else as YAML.
type GroupConfigSource struct {
	logger *logrus.Logger
	path   string
}

func NewGroupConfigSource(logger *logrus.Logger, path string) *GroupConfigSource {
	return &GroupConfigSource{
		logger: logger,
		path:   path,
	}
}

func (s *GroupConfigSource) Name() string {
	return "groups:" + s.path
}

func (s *GroupConfigSource) Fetch(ctx context.Context) (*Dataset, error) {
	cfg, err := LoadBoardConfig(s.path, s.logger)
	if err != nil {
		return nil, &AcquisitionError{Source: s.Name(), Err: err}
	}

	s.logger.WithFields(logrus.Fields{
		"path":   s.path,
		"groups": len(cfg.GroupSpecs()),
		"tasks":  len(cfg.Tasks),
	}).Info("Loaded board config")

	return &Dataset{
		Records:  cfg.Tasks,
		Groups:   cfg.GroupSpecs(),
		Title:    cfg.Title,
		Subtitle: cfg.Subtitle,
		Footer:   cfg.Footer,
		Origin:   s.Name(),
	}, nil
}

// boardConfigFile mirrors types.BoardConfig with tasks left undecoded so
// each one can fail on its own.
type boardConfigFile struct {
	Title    string            `json:"title" yaml:"title"`
	Subtitle string            `json:"subtitle" yaml:"subtitle"`
	Footer   string            `json:"footer" yaml:"footer"`
	Groups   []types.GroupSpec `json:"groups" yaml:"groups"`
	Birds    []types.GroupSpec `json:"birds" yaml:"birds"`
}

type jsonBoardConfig struct {
	boardConfigFile
	Tasks []json.RawMessage `json:"tasks"`
}

type yamlBoardConfig struct {
	boardConfigFile `yaml:",inline"`
	Tasks           []yaml.Node `yaml:"tasks"`
}

// LoadBoardConfig reads a group board config from path. A task that does not
// decode is replaced by a placeholder and logged.
func LoadBoardConfig(path string, logger *logrus.Logger) (*types.BoardConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var header boardConfigFile
	var tasks []types.JobRecord
	if strings.EqualFold(filepath.Ext(path), ".json") {
		var doc jsonBoardConfig
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
		header = doc.boardConfigFile
		tasks = make([]types.JobRecord, 0, len(doc.Tasks))
		for i, raw := range doc.Tasks {
			var r types.JobRecord
			if err := json.Unmarshal(raw, &r); err != nil {
				warnMalformedTask(logger, path, i, err)
				r = placeholder(raw)
			}
			tasks = append(tasks, r)
		}
	} else {
		var doc yamlBoardConfig
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
		header = doc.boardConfigFile
		tasks = make([]types.JobRecord, 0, len(doc.Tasks))
		for i := range doc.Tasks {
			node := &doc.Tasks[i]
			var r types.JobRecord
			if err := node.Decode(&r); err != nil {
				warnMalformedTask(logger, path, i, err)
				var fields map[string]any
				_ = node.Decode(&fields)
				r = salvageRecord(fields)
			}
			tasks = append(tasks, r)
		}
	}

	return &types.BoardConfig{
		Title:    header.Title,
		Subtitle: header.Subtitle,
		Footer:   header.Footer,
		Groups:   header.Groups,
		Birds:    header.Birds,
		Tasks:    tasks,
	}, nil
}

func warnMalformedTask(logger *logrus.Logger, path string, index int, err error) {
	logger.WithFields(logrus.Fields{
		"path":  path,
		"index": index,
		"error": err.Error(),
	}).Warn("Malformed task, using placeholder")
}
