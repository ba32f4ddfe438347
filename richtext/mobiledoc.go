package richtext

import "fmt"

const MobiledocVersion = "0.3.1"

// mobiledocEnvelope is the single-section document Ghost used for revisions
// before Lexical. The HTML is placed into the one text run as-is.
const mobiledocEnvelope = `{"version":"%s","atoms":[],"cards":[],"markups":[],"sections":[[1,"p",[[0,[],0,"%s"]]]]}`

// MobiledocRevision wraps the unparsed htmlStr in the legacy revision
// envelope stored in mobiledoc_revisions and post_revisions.
//
// The HTML is not escaped, so quotes or backslashes in the body produce a
// string that is not valid JSON. Consumers of existing revisions read this
// exact shape.
func MobiledocRevision(htmlStr string) string {
	return fmt.Sprintf(mobiledocEnvelope, MobiledocVersion, htmlStr)
}
