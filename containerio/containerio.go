// Package containerio reads and writes the packer's input and output
// containers as a zip archive holding one YAML document per
// container, generalizing the teacher's APK zip-entry-matching idiom
// to a container format built for this domain rather than Android's.
package containerio

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"regexp"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/dexpack/interdex/classmodel"
)

var entryPattern = regexp.MustCompile(`^container(\d+)\.yaml$`)

// Read opens a zip archive at path and decodes each containerNN.yaml
// entry into a classmodel.Container, in ascending NN order. All
// entries share one class namespace: a reference in container 3 to a
// class declared in container 0 resolves to the same handle.
func Read(path string, visitor Visitor) ([]classmodel.Container, error) {
	if visitor == nil {
		visitor = NopVisitor{}
	}
	rc, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("containerio: opening %s: %w", path, err)
	}
	defer rc.Close()

	visitor.VisitArchive(path)
	visitor.Verbose(1, "archive %s contains %d entries", path, len(rc.File))

	type indexed struct {
		index int
		entry *zip.File
	}
	var entries []indexed
	for _, f := range rc.File {
		m := entryPattern.FindStringSubmatch(f.Name)
		if m == nil {
			continue
		}
		var n int
		fmt.Sscanf(m[1], "%d", &n)
		entries = append(entries, indexed{index: n, entry: f})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].index < entries[j].index })

	wireContainers := make([]wireContainer, len(entries))
	for i, e := range entries {
		wc, err := decodeEntry(e.entry)
		if err != nil {
			return nil, fmt.Errorf("containerio: decoding %s: %w", e.entry.Name, err)
		}
		wireContainers[i] = wc
		visitor.Verbose(1, "container %d (%s) has %d classes", e.index, e.entry.Name, len(wc.Classes))
	}

	stubs := buildStubs(wireContainers)
	containers := make([]classmodel.Container, len(wireContainers))
	for i, wc := range wireContainers {
		for _, c := range wc.Classes {
			hydrate(c, stubs)
			visitor.VisitClass(c.Name, len(c.Methods))
			containers[i] = append(containers[i], stubs[c.Name])
		}
	}
	return containers, nil
}

func decodeEntry(f *zip.File) (wireContainer, error) {
	r, err := f.Open()
	if err != nil {
		return wireContainer{}, err
	}
	defer r.Close()
	data, err := io.ReadAll(r)
	if err != nil {
		return wireContainer{}, err
	}
	var wc wireContainer
	if err := yaml.Unmarshal(data, &wc); err != nil {
		return wireContainer{}, err
	}
	return wc, nil
}

// Write creates a zip archive at path holding one containerNN.yaml
// entry per container, in output order.
func Write(path string, containers []classmodel.Container) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("containerio: creating %s: %w", path, err)
	}
	defer f.Close()

	zw := zip.NewWriter(f)
	for i, c := range containers {
		wc := toWireContainer(c)
		data, err := yaml.Marshal(wc)
		if err != nil {
			return fmt.Errorf("containerio: marshaling container %d: %w", i, err)
		}
		entry, err := zw.Create(fmt.Sprintf("container%02d.yaml", i))
		if err != nil {
			return fmt.Errorf("containerio: creating entry for container %d: %w", i, err)
		}
		if _, err := entry.Write(data); err != nil {
			return fmt.Errorf("containerio: writing entry for container %d: %w", i, err)
		}
	}
	return zw.Close()
}
