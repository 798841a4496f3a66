// Package project models the conventional layout of a Kotlin source tree:
// sources under src/main/kotlin and src/test/kotlin, compiled output under
// build/main and build/test.
package project

import "path/filepath"

// Project describes the tree a build operates on.
type Project struct {
	Name    string
	Version string
	BaseDir string
}

func New(name, baseDir string) *Project {
	return &Project{Name: name, BaseDir: baseDir}
}

func (p *Project) SrcMainDirectory() string {
	return filepath.Join(p.BaseDir, "src", "main", "kotlin")
}

func (p *Project) SrcTestDirectory() string {
	return filepath.Join(p.BaseDir, "src", "test", "kotlin")
}

func (p *Project) BuildDirectory() string {
	return filepath.Join(p.BaseDir, "build")
}

func (p *Project) BuildMainDirectory() string {
	return filepath.Join(p.BuildDirectory(), "main")
}

func (p *Project) BuildTestDirectory() string {
	return filepath.Join(p.BuildDirectory(), "test")
}
