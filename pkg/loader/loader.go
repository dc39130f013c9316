package loader

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/netfab/fabric-port-engine/pkg/models"
	"github.com/netfab/fabric-port-engine/pkg/utils"
)

// DataLoader handles loading and validating YAML assignment and profile files
type DataLoader struct {
	basePath string
	logger   *utils.Logger
	validate *validator.Validate
}

// NewDataLoader creates a new data loader rooted at basePath
func NewDataLoader(basePath string, logger *utils.Logger) *DataLoader {
	return &DataLoader{
		basePath: basePath,
		logger:   logger,
		validate: validator.New(),
	}
}

// LoadAssignments loads port assignment definitions from a folder
func (dl *DataLoader) LoadAssignments(folder string) ([]models.PortAssignment, error) {
	var assignments []models.PortAssignment

	err := dl.eachYAMLFile(folder, func(path string) error {
		var items []models.PortAssignment
		if err := dl.unmarshalFile(path, &items); err != nil {
			return err
		}
		for i := range items {
			if err := dl.validate.Struct(&items[i]); err != nil {
				return fmt.Errorf("invalid assignment in %s: %w", path, err)
			}
		}
		assignments = append(assignments, items...)
		return nil
	})
	if err != nil {
		return nil, err
	}

	dl.logger.Debug("Loaded %d assignments from %s", len(assignments), folder)
	return assignments, nil
}

// LoadProfiles loads switch profile definitions from a folder
func (dl *DataLoader) LoadProfiles(folder string) ([]models.SwitchProfile, error) {
	var profiles []models.SwitchProfile

	err := dl.eachYAMLFile(folder, func(path string) error {
		var items []models.SwitchProfile
		if err := dl.unmarshalFile(path, &items); err != nil {
			return err
		}
		for i := range items {
			if err := dl.validate.Struct(&items[i]); err != nil {
				return fmt.Errorf("invalid profile in %s: %w", path, err)
			}
		}
		profiles = append(profiles, items...)
		return nil
	})
	if err != nil {
		return nil, err
	}

	dl.logger.Debug("Loaded %d profiles from %s", len(profiles), folder)
	return profiles, nil
}

// eachYAMLFile walks a folder and invokes fn for every YAML file found.
// A missing folder is a skip, not an error.
func (dl *DataLoader) eachYAMLFile(folder string, fn func(path string) error) error {
	targetDir := filepath.Join(dl.basePath, folder)

	if _, err := os.Stat(targetDir); os.IsNotExist(err) {
		dl.logger.Warning("Folder %s not found, skipping", folder)
		return nil
	}

	files, err := dl.findYAMLFiles(targetDir)
	if err != nil {
		return fmt.Errorf("failed to find YAML files in %s: %w", targetDir, err)
	}

	if len(files) == 0 {
		dl.logger.Warning("No YAML files found in %s", folder)
		return nil
	}

	for _, file := range files {
		if err := fn(file); err != nil {
			return fmt.Errorf("failed to load %s: %w", file, err)
		}
	}

	return nil
}

// unmarshalFile reads one YAML file into the target slice
func (dl *DataLoader) unmarshalFile(path string, target interface{}) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	if err := yaml.Unmarshal(content, target); err != nil {
		return fmt.Errorf("failed to unmarshal YAML: %w", err)
	}

	return nil
}

// findYAMLFiles recursively finds all YAML files in a directory
func (dl *DataLoader) findYAMLFiles(dir string) ([]string, error) {
	var files []string

	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if !info.IsDir() {
			ext := filepath.Ext(path)
			if ext == ".yaml" || ext == ".yml" {
				files = append(files, path)
			}
		}

		return nil
	})

	return files, err
}
