package shim

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/GriffinCanCode/posixshim/internal/textconv"
)

// ProductFile is the name of the file that pins the organisation and
// application of an installation.
const ProductFile = "posixshim.toml"

// productInfo is the content of a product file:
//
//	[init]
//	organisation = "Acme"
//	application = "Tool"
type productInfo struct {
	Init struct {
		Organisation string `toml:"organisation"`
		Application  string `toml:"application"`
	} `toml:"init"`
}

// productDirs lists where a product file is looked for, relative to the
// directory holding the executable.
var productDirs = []string{
	".",
	filepath.Join("..", "share"),
	filepath.Join("..", "share", "posixshim"),
	filepath.Join("..", "etc"),
	filepath.Join("..", "etc", "posixshim"),
}

// findProductFile returns the first product file found for exe.
func findProductFile(exe string) (string, bool) {
	base := filepath.Dir(exe)
	for _, dir := range productDirs {
		path := filepath.Join(base, dir, ProductFile)
		if fi, err := os.Stat(path); err == nil && fi.Mode().IsRegular() {
			return path, true
		}
	}
	return "", false
}

func readProductFile(path string) (productInfo, error) {
	var info productInfo

	data, err := os.ReadFile(path)
	if err != nil {
		return info, err
	}
	data, err = textconv.ToUTF8(data)
	if err != nil {
		return info, fmt.Errorf("%s: %w", path, err)
	}
	if err := toml.Unmarshal(data, &info); err != nil {
		return info, fmt.Errorf("%s: %w", path, err)
	}
	return info, nil
}
