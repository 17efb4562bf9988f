package scanner

import (
	"strings"

	"github.com/beevik/etree"
	"github.com/lodestone-mc/lodestone/pkg/types"
)

const pomPattern = "META-INF/maven/**/pom.xml"

// extractMaven reads the Maven descriptor embedded by most build tools. Jars
// that shade libraries carry several; the one whose artifactId matches the
// file name is preferred, otherwise the first.
func extractMaven(jar *Jar) (Identity, bool, error) {
	poms := jar.Glob(pomPattern)
	if len(poms) == 0 {
		return Identity{}, false, nil
	}

	fromName := types.IDFromFileName(jar.Name)
	var first Identity
	var haveFirst bool
	var lastErr error
	for _, name := range poms {
		data, _, err := jar.ReadEntry(name)
		if err != nil {
			lastErr = err
			continue
		}
		id, found, err := parsePom(data)
		if err != nil {
			lastErr = err
			continue
		}
		if !found {
			continue
		}
		if id.ID == fromName {
			return id, true, nil
		}
		if !haveFirst {
			first, haveFirst = id, true
		}
	}
	if haveFirst {
		return first, true, nil
	}
	return Identity{}, false, lastErr
}

func parsePom(data []byte) (Identity, bool, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return Identity{}, false, err
	}
	project := doc.SelectElement("project")
	if project == nil {
		return Identity{}, false, nil
	}

	artifact := childText(project, "artifactId")
	ver := childText(project, "version")
	if ver == "" {
		if parent := project.SelectElement("parent"); parent != nil {
			ver = childText(parent, "version")
		}
	}
	id, found := identity(artifact, ver)
	return id, found, nil
}

func childText(el *etree.Element, tag string) string {
	child := el.SelectElement(tag)
	if child == nil {
		return ""
	}
	return strings.TrimSpace(child.Text())
}
