package readme

import (
	"regexp"
	"strings"

	"github.com/adrg/frontmatter"

	"github.com/nao1215/trendscan/internal/model"
)

// heading anchors every default pattern to an ATX heading line so that body
// text such as "pip install foo" never starts a section.
const heading = `^#{1,6}\s*.*`

// Default heading patterns per summary field. Patterns are tried in order but
// the earliest matching line in the document wins.
var (
	IntroductionPatterns = mustCompilePatterns(
		heading+`(introduction|overview|about|what is)`,
		heading+`(简介|介绍|概述|项目介绍)`,
		heading+`(はじめに|概要)`,
	)

	ScenarioPatterns = mustCompilePatterns(
		heading+`(use[- ]?cases?|scenarios?|applications?|examples?|demo)`,
		heading+`(使用场景|应用场景|场景|示例)`,
		heading+`(ユースケース|利用例)`,
	)

	InstallPatterns = mustCompilePatterns(
		heading+`(install|installation|setup|getting started|requirements)`,
		heading+`(安装|部署)`,
		heading+`(インストール|導入)`,
	)

	UsagePatterns = mustCompilePatterns(
		heading+`(usage|quick ?start|how to use|running)`,
		heading+`(使用方法|用法|快速开始|快速上手)`,
		heading+`(使い方|使用方法)`,
	)

	MeaningPatterns = mustCompilePatterns(
		heading+`(why|motivation|features|highlights|benefits)`,
		heading+`(为什么|意义|特性|亮点)`,
		heading+`(特徴|なぜ)`,
	)
)

// Summarize extracts the five summary excerpts from a README document.
// Front matter is stripped first. Each excerpt is cut to maxLen runes.
func Summarize(doc string, maxLen int) model.ReadmeSummary {
	body := StripFrontMatter(doc)

	excerpt := func(patterns []*regexp.Regexp) string {
		return Extract(body, patterns, maxLen).Body
	}

	return model.ReadmeSummary{
		Introduction: excerpt(IntroductionPatterns),
		Scenario:     excerpt(ScenarioPatterns),
		Install:      excerpt(InstallPatterns),
		Usage:        excerpt(UsagePatterns),
		Meaning:      excerpt(MeaningPatterns),
	}
}

// StripFrontMatter removes a leading YAML/TOML/JSON front matter block.
// Documents without front matter, or with front matter that fails to parse,
// are returned unchanged.
func StripFrontMatter(doc string) string {
	var meta map[string]any
	body, err := frontmatter.Parse(strings.NewReader(doc), &meta)
	if err != nil {
		return doc
	}
	return string(body)
}
