// Package viewer holds the server-side pieces of the 3D model viewer: upload
// kind detection and the grayscale shading model the canvas applies.
package viewer

import (
	"errors"
	"path/filepath"
	"strings"
)

var ErrUnsupportedModel = errors.New("unsupported model format (want .glb, .gltf, .stl or .obj)")

type Kind string

const (
	KindGLTF Kind = "gltf"
	KindSTL  Kind = "stl"
	KindOBJ  Kind = "obj"
)

// Accept mirrors the file picker's accept list.
const Accept = ".glb,.gltf,.stl,.obj,model/gltf-binary,model/gltf+json,model/stl"

// KindFromFilename picks the loader from the file extension.
func KindFromFilename(name string) (Kind, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".stl":
		return KindSTL, nil
	case ".obj":
		return KindOBJ, nil
	case ".glb", ".gltf":
		return KindGLTF, nil
	}
	return "", ErrUnsupportedModel
}

// ContentType for a stored file of this kind. glTF splits on the extension.
func ContentType(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".glb":
		return "model/gltf-binary"
	case ".gltf":
		return "model/gltf+json"
	case ".stl":
		return "model/stl"
	case ".obj":
		return "model/obj"
	}
	return "application/octet-stream"
}
