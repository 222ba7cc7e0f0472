// cmd/tools/preset-updater/main.go
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"workforce-workers/internal/scenario"
	"workforce-workers/pkg/presets"
)

var registryPath = "configs/scenario-presets.json"

func main() {
	addCmd := flag.NewFlagSet("add", flag.ExitOnError)
	updateCmd := flag.NewFlagSet("update", flag.ExitOnError)
	validateCmd := flag.NewFlagSet("validate", flag.ExitOnError)

	// Add command flags
	nameAdd := addCmd.String("name", "", "Preset name (e.g., 'FCB Current State')")
	fte := addCmd.Int("fte", 0, "Headcount (FTE)")
	staffCost := addCmd.Float64("staffCost", 0, "Annual staff cost")
	revenue := addCmd.Float64("revenue", 0, "Annual revenue")
	avgSalary := addCmd.Float64("avgSalary", 0, "Average salary (derived from staffCost/fte when 0)")
	aiInvestment := addCmd.Float64("aiInvestment", 0, "Planned AI investment")

	// Update command flags
	nameUpdate := updateCmd.String("name", "", "Preset name to update")
	field := updateCmd.String("field", "", "Field to update (fte, staffCost, revenue, avgSalary, aiInvestment)")
	value := updateCmd.String("value", "", "New value for the field")

	// Validate command flags
	validateCmd.StringVar(&registryPath, "path", "configs/scenario-presets.json", "Path to preset registry file")

	if len(os.Args) < 2 {
		help()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "add":
		addCmd.Parse(os.Args[2:])
		if *nameAdd == "" || *fte <= 0 || *staffCost <= 0 {
			fmt.Println("Error: name, fte, and staffCost are required for add.")
			addCmd.Usage()
			os.Exit(1)
		}
		preset := scenario.Inputs{
			Name:         *nameAdd,
			FTE:          *fte,
			StaffCost:    *staffCost,
			Revenue:      *revenue,
			AvgSalary:    *avgSalary,
			AIInvestment: *aiInvestment,
		}
		if preset.AvgSalary == 0 {
			preset.AvgSalary = preset.StaffCost / float64(preset.FTE)
		}
		err := addPreset(&preset)
		if err != nil {
			fmt.Printf("Error adding preset: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Added preset: %s\n", *nameAdd)

	case "update":
		updateCmd.Parse(os.Args[2:])
		if *nameUpdate == "" || *field == "" || *value == "" {
			fmt.Println("Error: name, field, and value are required for update.")
			updateCmd.Usage()
			os.Exit(1)
		}
		err := updatePreset(*nameUpdate, *field, *value)
		if err != nil {
			fmt.Printf("Error updating preset: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Updated preset %s: %s = %s\n", *nameUpdate, *field, *value)

	case "validate":
		validateCmd.Parse(os.Args[2:])
		err := validateRegistry()
		if err != nil {
			fmt.Printf("Registry validation failed: %v\n", err)
			os.Exit(1)
		}

	case "help":
		fallthrough
	default:
		help()
	}
}

func addPreset(preset *scenario.Inputs) error {
	reg, err := presets.LoadRegistry(registryPath)
	if err != nil {
		// If file doesn't exist, create new registry
		if os.IsNotExist(err) {
			reg = &presets.Registry{
				Version:     "1.0",
				LastUpdated: time.Now().Format(time.RFC3339),
				Presets:     []scenario.Inputs{},
			}
		} else {
			return fmt.Errorf("failed to load registry: %w", err)
		}
	}

	// Check if preset already exists
	if _, exists := reg.Find(preset.Name); exists {
		return fmt.Errorf("preset named %q already exists", preset.Name)
	}

	// Add new preset
	reg.Presets = append(reg.Presets, *preset)
	reg.LastUpdated = time.Now().Format(time.RFC3339)

	// Save registry
	return saveRegistry(reg, registryPath)
}

func updatePreset(name, field, value string) error {
	reg, err := presets.LoadRegistry(registryPath)
	if err != nil {
		return fmt.Errorf("failed to load registry: %w", err)
	}

	found := false
	for i := range reg.Presets {
		if reg.Presets[i].Name == name {
			found = true
			switch field {
			case "fte":
				fte, err := strconv.Atoi(value)
				if err != nil {
					return fmt.Errorf("invalid fte value: %w", err)
				}
				reg.Presets[i].FTE = fte
			case "staffCost":
				v, err := strconv.ParseFloat(value, 64)
				if err != nil {
					return fmt.Errorf("invalid staffCost value: %w", err)
				}
				reg.Presets[i].StaffCost = v
			case "revenue":
				v, err := strconv.ParseFloat(value, 64)
				if err != nil {
					return fmt.Errorf("invalid revenue value: %w", err)
				}
				reg.Presets[i].Revenue = v
			case "avgSalary":
				v, err := strconv.ParseFloat(value, 64)
				if err != nil {
					return fmt.Errorf("invalid avgSalary value: %w", err)
				}
				reg.Presets[i].AvgSalary = v
			case "aiInvestment":
				v, err := strconv.ParseFloat(value, 64)
				if err != nil {
					return fmt.Errorf("invalid aiInvestment value: %w", err)
				}
				reg.Presets[i].AIInvestment = v
			default:
				return fmt.Errorf("unknown field: %s", field)
			}
			break
		}
	}

	if !found {
		return fmt.Errorf("preset named %q not found", name)
	}

	reg.LastUpdated = time.Now().Format(time.RFC3339)
	return saveRegistry(reg, registryPath)
}

func validateRegistry() error {
	reg, err := presets.LoadRegistry(registryPath)
	if err != nil {
		return fmt.Errorf("failed to load registry: %w", err)
	}

	if len(reg.Presets) == 0 {
		return fmt.Errorf("registry contains no presets")
	}

	names := make(map[string]bool)
	for _, preset := range reg.Presets {
		if preset.Name == "" {
			return fmt.Errorf("preset missing required field: name")
		}
		if names[preset.Name] {
			return fmt.Errorf("duplicate preset name: %s", preset.Name)
		}
		names[preset.Name] = true

		if preset.FTE <= 0 {
			return fmt.Errorf("preset %s: fte must be positive", preset.Name)
		}
		if preset.StaffCost <= 0 {
			return fmt.Errorf("preset %s: staffCost must be positive", preset.Name)
		}
		if preset.Revenue < 0 {
			return fmt.Errorf("preset %s: revenue must not be negative", preset.Name)
		}
	}

	fmt.Printf("Registry validation passed. Found %d presets.\n", len(reg.Presets))
	return nil
}

// saveRegistry handles saving the registry to file
func saveRegistry(reg *presets.Registry, path string) error {
	data, err := json.MarshalIndent(reg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal registry: %w", err)
	}

	// Create directory if it doesn't exist
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	err = os.WriteFile(path, data, 0644)
	if err != nil {
		return fmt.Errorf("failed to write registry file: %w", err)
	}

	return nil
}

func help() {
	fmt.Println(`
Usage: preset-updater <command> [flags]

Commands:
  add      Add a new scenario preset to the registry
  update   Update a field on an existing preset
  validate Validate the preset registry file
  help     Show this help message

Examples:
  preset-updater add -name "FCB Current State" -fte 46 -staffCost 6600550 -revenue 11904526 -aiInvestment 250000
  preset-updater update -name "FCB Current State" -field revenue -value 12500000
  preset-updater validate -path configs/scenario-presets.json

Use 'preset-updater <command> -h' for more information about a command.`)
}
