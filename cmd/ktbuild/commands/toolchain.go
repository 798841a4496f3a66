package commands

import (
	"context"
	"fmt"
	"os"

	"git.home.luguber.info/inful/ktbuild/internal/config"
	"git.home.luguber.info/inful/ktbuild/internal/toolchain"
)

// ToolchainCmd implements the 'toolchain' command: show what compiler
// discovery would use, without compiling anything.
type ToolchainCmd struct{}

func (t *ToolchainCmd) Run(_ *Global, root *CLI) error {
	// Configuration is optional here; discovery also works standalone.
	var executable, home string
	if cfg, err := config.Load(root.Config); err == nil {
		executable = cfg.Compiler.Executable
		home = cfg.Compiler.KotlinHome
	} else if _, statErr := os.Stat(root.Config); statErr == nil {
		return fmt.Errorf("load config: %w", err)
	}

	discovery, err := toolchain.NewLocator(toolchain.OSEnvironment{}).Find(executable, home)
	if err != nil {
		return err
	}

	fmt.Printf("Executable: %s\n", discovery.Executable)
	if discovery.Home != "" {
		fmt.Printf("Kotlin home: %s\n", discovery.Home)
	}
	if version := toolchain.DetectVersion(context.Background(), discovery.Executable); version != "" {
		fmt.Printf("Version: %s\n", version)
	} else {
		fmt.Println("Version: unknown (compiler did not respond)")
	}
	return nil
}
