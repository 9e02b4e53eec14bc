package spicetest

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/woxQAQ/gospice/internal/ffi"
)

type loadedKernel struct {
	path   string
	kind   string
	ext    string
	source string
	handle int32
}

// kernelKinds maps file extensions to the kernel kinds reported by ktotal.
var kernelKinds = map[string]string{
	".bsp": "SPK",
	".bc":  "CK",
	".bpc": "PCK",
	".bds": "DSK",
	".tm":  "META",
	".tls": "TEXT",
	".tpc": "TEXT",
	".tf":  "TEXT",
	".ti":  "TEXT",
	".tsc": "TEXT",
}

func kernelKind(path string) (string, string) {
	ext := strings.ToLower(filepath.Ext(path))
	return kernelKinds[ext], ext
}

func isBinary(kind string) bool {
	return kind == "SPK" || kind == "CK" || kind == "PCK" || kind == "DSK"
}

// AddFile registers a file on the virtual file system. Text kernels and
// meta-kernels are parsed from content when loaded; binary kernels may have
// empty content.
func (f *Fake) AddFile(path, content string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.files[path] = content
}

// RemoveFile deletes a file from the virtual file system.
func (f *Fake) RemoveFile(path string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.files, path)
}

// Loaded returns the loaded kernel paths in load order.
func (f *Fake) Loaded() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.loaded))
	for i, k := range f.loaded {
		out[i] = k.path
	}
	return out
}

func (f *Fake) exists(path string) bool {
	if _, ok := f.files[path]; ok {
		return true
	}
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

func (f *Fake) content(path string) (string, error) {
	if s, ok := f.files[path]; ok {
		return s, nil
	}
	b, err := os.ReadFile(path)
	return string(b), err
}

func (f *Fake) hasLoaded(pred func(k *loadedKernel) bool) bool {
	for _, k := range f.loaded {
		if pred(k) {
			return true
		}
	}
	return false
}

func (f *Fake) hasLSK() bool {
	return f.hasLoaded(func(k *loadedKernel) bool { return k.ext == ".tls" })
}

func (f *Fake) hasSPK() bool {
	return f.hasLoaded(func(k *loadedKernel) bool { return k.kind == "SPK" })
}

func (f *Fake) hasSCLK() bool {
	return f.hasLoaded(func(k *loadedKernel) bool { return k.ext == ".tsc" })
}

func (f *Fake) load(c *call, path, source string) {
	path = strings.TrimSpace(path)
	if path == "" {
		c.signal("SPICE(BLANKFILENAME)", "The input filename is blank.")
		return
	}
	if !f.exists(path) {
		c.signal("SPICE(NOSUCHFILE)",
			"The file '"+path+"' specified by FURNSH does not exist.")
		return
	}
	kind, ext := kernelKind(path)
	if kind == "" {
		c.signal("SPICE(UNKNOWNKERNELTYPE)",
			"The file '"+path+"' is not a recognized kernel type.")
		return
	}

	// Loading a kernel again moves it to the end of the list.
	f.unloadPath(path)

	k := &loadedKernel{path: path, kind: kind, ext: ext, source: source}
	if isBinary(kind) {
		f.handles++
		k.handle = f.handles
	}

	var members []string
	if kind == "TEXT" || kind == "META" {
		body, err := f.content(path)
		if err != nil {
			c.signal("SPICE(FILEREADFAILED)", "Could not read '"+path+"': "+err.Error())
			return
		}
		assigns, err := parseTextKernel(body)
		if err != nil {
			c.signal("SPICE(BADVARASSIGN)", "Kernel '"+path+"': "+err.Error())
			return
		}
		f.apply(assigns)
		if kind == "META" {
			members = metaMembers(assigns)
		}
	}
	f.loaded = append(f.loaded, k)

	for _, m := range members {
		f.load(c, m, path)
		if c.signalled {
			return
		}
	}
}

// metaMembers resolves KERNELS_TO_LOAD against PATH_SYMBOLS/PATH_VALUES.
func metaMembers(assigns []assignment) []string {
	var files, symbols, values []string
	for _, a := range assigns {
		switch a.name {
		case "KERNELS_TO_LOAD":
			files = append(files, a.value.strs...)
		case "PATH_SYMBOLS":
			symbols = append(symbols, a.value.strs...)
		case "PATH_VALUES":
			values = append(values, a.value.strs...)
		}
	}
	for i, file := range files {
		for j, sym := range symbols {
			if j < len(values) {
				file = strings.ReplaceAll(file, "$"+sym, values[j])
			}
		}
		files[i] = file
	}
	return files
}

func (f *Fake) apply(assigns []assignment) {
	for _, a := range assigns {
		cur, ok := f.pool[a.name]
		if a.append && ok {
			cur.nums = append(cur.nums, a.value.nums...)
			cur.strs = append(cur.strs, a.value.strs...)
			f.pool[a.name] = cur
			continue
		}
		f.pool[a.name] = a.value
	}
}

// unloadPath drops a kernel and everything it loaded, then rebuilds the
// pool from the text kernels that remain.
func (f *Fake) unloadPath(path string) bool {
	kept := f.loaded[:0]
	removed := false
	for _, k := range f.loaded {
		if k.path == path || k.source == path {
			removed = true
			continue
		}
		kept = append(kept, k)
	}
	f.loaded = kept
	if removed {
		f.rebuildPool()
	}
	return removed
}

func (f *Fake) rebuildPool() {
	f.pool = make(map[string]poolValue)
	for _, k := range f.loaded {
		if k.kind != "TEXT" && k.kind != "META" {
			continue
		}
		body, err := f.content(k.path)
		if err != nil {
			continue
		}
		if assigns, err := parseTextKernel(body); err == nil {
			f.apply(assigns)
		}
	}
}

func (f *Fake) furnsh(c *call) ffi.Value {
	file, ok := c.text(0, "file")
	if !ok {
		return ffi.Value{}
	}
	f.load(c, file, "")
	return ffi.Value{}
}

func (f *Fake) unload(c *call) ffi.Value {
	file, ok := c.text(0, "file")
	if !ok {
		return ffi.Value{}
	}
	f.unloadPath(strings.TrimSpace(file))
	return ffi.Value{}
}

func (f *Fake) kclear(c *call) ffi.Value {
	f.loaded = nil
	f.pool = make(map[string]poolValue)
	return ffi.Value{}
}

func kindMatcher(kinds string) func(k *loadedKernel) bool {
	want := map[string]bool{}
	for _, w := range strings.Fields(strings.ToUpper(kinds)) {
		want[w] = true
	}
	return func(k *loadedKernel) bool {
		return want["ALL"] || want[k.kind]
	}
}

func (f *Fake) ktotal(c *call) ffi.Value {
	kind, ok := c.text(0, "kind")
	if !ok {
		return ffi.Value{}
	}
	match := kindMatcher(kind)
	var n int32
	for _, k := range f.loaded {
		if match(k) {
			n++
		}
	}
	c.setI32(1, n)
	return ffi.Value{}
}

func (f *Fake) kdata(c *call) ffi.Value {
	which := c.i32(0)
	kind, ok := c.text(1, "kind")
	if !ok {
		return ffi.Value{}
	}
	fillen, ok1 := c.outLen(2, "file")
	typlen, ok2 := c.outLen(3, "filtyp")
	srclen, ok3 := c.outLen(4, "srcfil")
	if !ok1 || !ok2 || !ok3 {
		return ffi.Value{}
	}
	match := kindMatcher(kind)
	var idx int32
	for _, k := range f.loaded {
		if !match(k) {
			continue
		}
		if idx == which {
			c.setStr(5, k.path, fillen)
			c.setStr(6, k.kind, typlen)
			c.setStr(7, k.source, srclen)
			c.setI32(8, k.handle)
			c.setBool(9, true)
			return ffi.Value{}
		}
		idx++
	}
	c.setBool(9, false)
	return ffi.Value{}
}
