package parser

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// IndustryEntry 行业关键词到展示标签的映射
// 用有序切片而不是map，保证行业输出顺序在多次运行间稳定
type IndustryEntry struct {
	Keyword string `yaml:"keyword"`
	Label   string `yaml:"label"`
}

// Taxonomy 技能与行业关键词表
// 以数据形式注入解析器，便于测试替换和不改代码扩展关键词
type Taxonomy struct {
	ProgrammingLanguages []string        `yaml:"programming_languages"`
	Frameworks           []string        `yaml:"frameworks"`
	Tools                []string        `yaml:"tools"`
	Databases            []string        `yaml:"databases"`
	Industries           []IndustryEntry `yaml:"industries"`
}

// DefaultTaxonomy 返回内置关键词表
func DefaultTaxonomy() *Taxonomy {
	return &Taxonomy{
		ProgrammingLanguages: []string{
			"go", "golang", "python", "java", "javascript", "typescript",
			"c++", "c#", "ruby", "php", "rust", "kotlin", "swift", "scala",
		},
		Frameworks: []string{
			"react", "angular", "vue", "django", "flask", "spring",
			"express", "rails", "laravel", "gin", "fastapi",
		},
		Tools: []string{
			"docker", "kubernetes", "git", "jenkins", "terraform",
			"ansible", "aws", "gcp", "azure", "linux",
		},
		Databases: []string{
			"postgresql", "mysql", "mongodb", "redis", "elasticsearch",
			"cassandra", "sqlite",
		},
		Industries: []IndustryEntry{
			{Keyword: "fintech", Label: "Financial Technology"},
			{Keyword: "healthcare", Label: "Healthcare"},
			{Keyword: "ecommerce", Label: "E-commerce"},
			{Keyword: "gaming", Label: "Gaming"},
			{Keyword: "startup", Label: "Startup"},
			{Keyword: "enterprise", Label: "Enterprise"},
		},
	}
}

// LoadTaxonomy 从YAML文件加载关键词表
// 文件中缺失的类别回退到内置表对应的类别
func LoadTaxonomy(path string) (*Taxonomy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("读取关键词表失败: %w", err)
	}

	var loaded Taxonomy
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return nil, fmt.Errorf("解析关键词表失败: %w", err)
	}

	def := DefaultTaxonomy()
	if len(loaded.ProgrammingLanguages) == 0 {
		loaded.ProgrammingLanguages = def.ProgrammingLanguages
	}
	if len(loaded.Frameworks) == 0 {
		loaded.Frameworks = def.Frameworks
	}
	if len(loaded.Tools) == 0 {
		loaded.Tools = def.Tools
	}
	if len(loaded.Databases) == 0 {
		loaded.Databases = def.Databases
	}
	if len(loaded.Industries) == 0 {
		loaded.Industries = def.Industries
	}

	return &loaded, nil
}
