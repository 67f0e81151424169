package walk

import (
	"strconv"
	"strings"
)

// LocationContext represents where an element is located within its parent.
type LocationContext struct {
	ParentField string
	ParentIndex *int
}

// Locations is the path from the walk root to an element.
type Locations []LocationContext

// String renders the locations as a slash separated path such as /Body/0/Expression.
func (l Locations) String() string {
	var sb strings.Builder

	for _, location := range l {
		sb.WriteString("/")
		if location.ParentIndex != nil {
			sb.WriteString(strconv.Itoa(*location.ParentIndex))
			continue
		}
		sb.WriteString(location.ParentField)
	}

	if sb.Len() == 0 {
		return "/"
	}

	return sb.String()
}

func (l Locations) withField(name string) Locations {
	return append(l[:len(l):len(l)], LocationContext{ParentField: name})
}

func (l Locations) withIndex(i int) Locations {
	return append(l[:len(l):len(l)], LocationContext{ParentIndex: &i})
}
