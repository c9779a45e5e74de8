package engine

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
)

func TestDetectFramework_PackageJSON(t *testing.T) {
	cases := map[string]string{
		`{"dependencies":{"react":"18","next":"14"}}`:      "Next.js",
		`{"dependencies":{"react":"18","react-dom":"18"}}`: "React",
		`{"dependencies":{"vue":"3"}}`:                     "Vue",
		`{"dependencies":{"express":"4"}}`:                 "Express",
		`{"dependencies":{"fastify":"4"}}`:                 "Fastify",
		`{"dependencies":{"@nestjs/core":"10"}}`:           "NestJS",
		`{"dependencies":{"lodash":"4"}}`:                  "",
		`{"devDependencies":{"react":"18"}}`:               "",
		`not json`:                                         "",
	}
	for content, want := range cases {
		fsys := fstest.MapFS{"package.json": file(content)}
		assert.Equal(t, want, DetectFramework(fsys, JavaScript), content)
	}
}

func TestDetectFramework_TypeScriptUsesPackageJSON(t *testing.T) {
	fsys := fstest.MapFS{
		"tsconfig.json": file(`{}`),
		"package.json":  file(`{"dependencies":{"fastify":"4"}}`),
	}
	assert.Equal(t, "Fastify", DetectFramework(fsys, TypeScript))
}

func TestDetectFramework_Pyproject(t *testing.T) {
	pep621 := fstest.MapFS{"pyproject.toml": file(`
[project]
name = "svc"
dependencies = ["uvicorn>=0.29", "FastAPI[all]>=0.110"]
`)}
	assert.Equal(t, "FastAPI", DetectFramework(pep621, Python))

	poetry := fstest.MapFS{"pyproject.toml": file(`
[tool.poetry.dependencies]
python = "^3.12"
Django = "^5.0"
`)}
	assert.Equal(t, "Django", DetectFramework(poetry, Python))

	broken := fstest.MapFS{"pyproject.toml": file(`[project`)}
	assert.Equal(t, "", DetectFramework(broken, Python))
}

func TestDetectFramework_Cargo(t *testing.T) {
	fsys := fstest.MapFS{"Cargo.toml": file(`
[package]
name = "api"

[dependencies]
tokio = { version = "1", features = ["full"] }
axum = "0.7"
`)}
	assert.Equal(t, "Axum", DetectFramework(fsys, Rust))
	assert.Equal(t, "", DetectFramework(fstest.MapFS{}, Rust))
}

func TestDetectFramework_OtherLanguages(t *testing.T) {
	fsys := fstest.MapFS{"package.json": file(`{"dependencies":{"react":"18"}}`)}
	assert.Equal(t, "", DetectFramework(fsys, Go))
}

func TestRequirementName(t *testing.T) {
	assert.Equal(t, "fastapi", requirementName("FastAPI[all]>=0.110"))
	assert.Equal(t, "flask", requirementName(" flask ; python_version>'3.8'"))
	assert.Equal(t, "django", requirementName("django"))
}
