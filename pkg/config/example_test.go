package config_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/walteh/isofix/pkg/config"
)

func ExampleLoad_yaml() {
	dir, err := os.MkdirTemp("", "isofix-example")
	if err != nil {
		fmt.Printf("Error creating dir: %v\n", err)
		return
	}
	defer os.RemoveAll(dir)

	configPath := filepath.Join(dir, ".isofix.yaml")
	configYAML := "pattern: \"*.py\"\nexclude: [\"**/migrations\"]\nstrict: true\n"
	if err := os.WriteFile(configPath, []byte(configYAML), 0644); err != nil {
		fmt.Printf("Error writing config: %v\n", err)
		return
	}

	cfg, err := config.Load(context.Background(), configPath)
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		return
	}

	fmt.Println(cfg.Pattern, cfg.Exclude, cfg.Encoding, cfg.BackupSuffix, cfg.Strict)
	// Output: *.py [**/migrations] utf-8 .backup true
}

func ExampleDefault() {
	cfg := config.Default()
	fmt.Println(cfg)
	// Output: . [*.py] encoding=utf-8 backup=.backup
}
