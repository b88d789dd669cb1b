package web

import "net/http"

// allowedMethods is advertised in the Allow header of OPTIONS responses.
const allowedMethods = "GET, POST, OPTIONS, DELETE"

type opKind int

const (
	opUnsupported opKind = iota
	opList
	opReadOne
	opCreate
	opUpdate
	opDelete
	opOptions
	opLogin
)

func (k opKind) String() string {
	switch k {
	case opList:
		return "list"
	case opReadOne:
		return "read"
	case opCreate:
		return "create"
	case opUpdate:
		return "update"
	case opDelete:
		return "delete"
	case opOptions:
		return "options"
	case opLogin:
		return "login"
	default:
		return "unsupported"
	}
}

// operation is a resolved API call. verb is the only HTTP method the
// operation accepts; any other method is answered with 406.
type operation struct {
	kind opKind
	verb string
	id   int64
}

// resolve maps a parsed request onto exactly one operation. The route name
// is looked up in a closed table; nothing derived from the request selects
// code by name.
func resolve(req *apiRequest) operation {
	switch req.Name {
	case "items":
		return resolveItems(req)
	case "item":
		id, _ := req.readID()
		return operation{kind: opReadOne, verb: http.MethodGet, id: id}
	case "insertitem":
		return operation{kind: opCreate, verb: http.MethodPost}
	case "updateitem":
		return operation{kind: opUpdate, verb: http.MethodPost, id: req.writeID()}
	case "deleteitem":
		return operation{kind: opDelete, verb: http.MethodDelete, id: req.writeID()}
	case "login":
		return operation{kind: opLogin, verb: http.MethodPost}
	default:
		return operation{kind: opUnsupported}
	}
}

func resolveItems(req *apiRequest) operation {
	switch req.Method {
	case http.MethodGet:
		if id, ok := req.readID(); ok {
			return operation{kind: opReadOne, verb: http.MethodGet, id: id}
		}
		return operation{kind: opList, verb: http.MethodGet}
	case http.MethodPost:
		if req.IDPresent {
			return operation{kind: opUpdate, verb: http.MethodPost, id: req.ID}
		}
		return operation{kind: opCreate, verb: http.MethodPost}
	case http.MethodDelete:
		return operation{kind: opDelete, verb: http.MethodDelete, id: req.writeID()}
	case http.MethodOptions:
		return operation{kind: opOptions, verb: http.MethodOptions}
	default:
		return operation{kind: opUnsupported}
	}
}
