package gputest

import (
	"fmt"
	"regexp"
	"strings"

	"Tekka/internal/gpu"
)

var (
	structPattern  = regexp.MustCompile(`(?s)struct\s+(\w+)\s*\{(.*?)\}\s*;`)
	fieldPattern   = regexp.MustCompile(`(\w+)\s+(\w+)\s*;`)
	uniformPattern = regexp.MustCompile(`uniform\s+(\w+)\s+(\w+)\s*;`)
	commentPattern = regexp.MustCompile(`(?s)//[^\n]*|/\*.*?\*/`)
)

// CheckSource is the default Compiler. It accepts any source that declares a
// #version, defines main and has balanced brackets; otherwise it returns a
// driver-style diagnostic.
func CheckSource(stage gpu.ShaderStage, source string) string {
	src := commentPattern.ReplaceAllString(source, "")
	if !strings.Contains(src, "#version") {
		return fmt.Sprintf("0:1(1): error: %s shader has no #version directive", stage)
	}
	if !strings.Contains(src, "void main") {
		return "0:1(1): error: function `main' is not defined"
	}
	for _, pair := range []string{"{}", "()"} {
		depth := 0
		for _, r := range src {
			switch r {
			case rune(pair[0]):
				depth++
			case rune(pair[1]):
				depth--
			}
			if depth < 0 {
				break
			}
		}
		if depth != 0 {
			return fmt.Sprintf("0:%d(1): error: syntax error, unbalanced '%c'", strings.Count(src, "\n")+1, pair[0])
		}
	}
	return ""
}

// ReflectUniforms lists the uniform names a source declares, expanding
// struct-typed uniforms into their "name.field" members.
func ReflectUniforms(source string) []string {
	src := commentPattern.ReplaceAllString(source, "")

	structs := make(map[string][]string)
	for _, m := range structPattern.FindAllStringSubmatch(src, -1) {
		var fields []string
		for _, f := range fieldPattern.FindAllStringSubmatch(m[2], -1) {
			fields = append(fields, f[2])
		}
		structs[m[1]] = fields
	}

	var names []string
	for _, m := range uniformPattern.FindAllStringSubmatch(src, -1) {
		typ, name := m[1], m[2]
		if fields, ok := structs[typ]; ok {
			for _, f := range fields {
				names = append(names, name+"."+f)
			}
			continue
		}
		names = append(names, name)
	}
	return names
}
