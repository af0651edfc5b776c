package overlay

import (
	"fmt"
	"strconv"
)

const blockerTemplate = `console.log("Blocking " + %[1]s);
try {
  const stub = new Proxy({}, {
    get: () => () => ({ then: (cb) => cb?.() }),
    set: () => true
  });
  window[%[1]s] = stub;
  Object.freeze(stub);
} catch (e) {}
`

// BlockerScript returns the init script that replaces window[global] with an
// inert stand-in. Any method called on it returns a thenable that just runs
// its callback, and assignments to its members are ignored. The global stays
// a plain writable property so page scripts may still reassign or redeclare it.
func BlockerScript(global string) string {
	return fmt.Sprintf(blockerTemplate, strconv.Quote(global))
}
