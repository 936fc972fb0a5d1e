package parser

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLoadTaxonomy 验证YAML关键词表加载和缺失类别回退
func TestLoadTaxonomy(t *testing.T) {
	content := `
programming_languages:
  - elixir
  - erlang
industries:
  - keyword: logistics
    label: Logistics
`
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "taxonomy.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	tax, err := LoadTaxonomy(path)
	require.NoError(t, err)

	// 显式配置的类别覆盖内置表
	assert.Equal(t, []string{"elixir", "erlang"}, tax.ProgrammingLanguages)
	require.Len(t, tax.Industries, 1)
	assert.Equal(t, "logistics", tax.Industries[0].Keyword)
	assert.Equal(t, "Logistics", tax.Industries[0].Label)

	// 未配置的类别回退到内置表
	def := DefaultTaxonomy()
	assert.Equal(t, def.Frameworks, tax.Frameworks)
	assert.Equal(t, def.Tools, tax.Tools)
	assert.Equal(t, def.Databases, tax.Databases)
}

// TestLoadTaxonomyMissingFile 验证文件不存在时返回错误
func TestLoadTaxonomyMissingFile(t *testing.T) {
	_, err := LoadTaxonomy(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

// TestLoadTaxonomyInvalidYAML 验证YAML语法错误时返回错误
func TestLoadTaxonomyInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("programming_languages: {broken"), 0644))

	_, err := LoadTaxonomy(path)
	assert.Error(t, err)
}
