package bridge

import (
	"fmt"
	"strings"
)

// workerScriptTemplate is the Python companion process embedded into every
// generated binary's build. It is a generalization of
// original_source/src/bridge/worker.py (SUPPLEMENTED FEATURES note 4): the
// original's simple "call" dispatch is expanded to the full command set
// (call_function/call_method/get_attribute/get_item/slice/iter/
// iter_next_batch/delete/ping), its get_callable shortest-import-prefix
// algorithm is kept verbatim, and its JSON-then-tolist()-then-to_dict()
// chain (handle_call) is kept as the value-encoding path for non-primitive
// results; a result that is still not JSON-representable after that chain
// becomes a new handle rather than a str() string.
const workerScriptTemplate = `#!/usr/bin/env python3
# Companion worker process for a tnk-generated binary. Launched with
# "python3 -u <this file>"; speaks NDJSON on stdin/stdout, diagnostics on
# stderr. See spec section 4.6 for the dispatch algorithm this implements.
import sys
import json
import importlib
import traceback

FORBIDDEN_NAMES = {%s}
FORBIDDEN_PREFIXES = (%s)

_modules_cache = {}
# _SESSIONS[session_id] = {"objects": {handle_id: obj}, "iterators": {handle_id: iter}}
# Partitioned per session_id so a handle minted for one session is never
# resolvable from another: see StaleHandle in spec section 3.
_SESSIONS = {}
_next_handle_id = 1


def get_session(session_id):
    if session_id not in _SESSIONS:
        _SESSIONS[session_id] = {"objects": {}, "iterators": {}}
    return _SESSIONS[session_id]


def get_callable(target):
    parts = target.split(".")
    if len(parts) < 2:
        raise ValueError(f"Invalid target: {target}")
    for i in range(1, len(parts)):
        module_name = ".".join(parts[:i])
        attr_path = parts[i:]
        if module_name not in _modules_cache:
            try:
                _modules_cache[module_name] = importlib.import_module(module_name)
            except ImportError:
                continue
        obj = _modules_cache[module_name]
        try:
            for attr in attr_path:
                obj = getattr(obj, attr)
            return obj
        except AttributeError:
            continue
    raise ValueError(f"Cannot resolve target: {target}")


def security_check(name):
    if name in FORBIDDEN_NAMES:
        raise PermissionError(f"forbidden name: {name}")
    if name.startswith(FORBIDDEN_PREFIXES):
        raise PermissionError(f"forbidden attribute prefix: {name}")


def new_handle(obj, session_id):
    global _next_handle_id
    hid = _next_handle_id
    _next_handle_id += 1
    get_session(session_id)["objects"][hid] = obj
    r = repr(obj)
    if len(r) > 200:
        r = r[:200]
    return {
        "kind": "handle",
        "handle": hid,
        "repr": r,
        "str": str(obj),
        "type": type(obj).__name__,
        "session_id": session_id,
    }


def encode_value(obj, session_id):
    if obj is None or isinstance(obj, (bool, int, float, str)):
        return {"kind": "value", "value": obj}
    if isinstance(obj, (list, tuple, dict)):
        try:
            json.dumps(obj)
            kind = "dict" if isinstance(obj, dict) else ("tuple" if isinstance(obj, tuple) else "list")
            items = list(obj.items()) if isinstance(obj, dict) else list(obj)
            return {"kind": kind, "items": [encode_value(x, session_id) for x in items]}
        except (TypeError, ValueError):
            pass
    if hasattr(obj, "tolist"):
        return encode_value(obj.tolist(), session_id)
    if hasattr(obj, "to_dict"):
        return encode_value(obj.to_dict(), session_id)
    try:
        json.dumps(obj)
        return {"kind": "value", "value": obj}
    except (TypeError, ValueError):
        return new_handle(obj, session_id)


def decode_value(v, session_id):
    kind = v.get("kind")
    if kind == "value":
        return v.get("value")
    if kind == "handle":
        hid = v.get("handle")
        objects = get_session(session_id)["objects"]
        if hid not in objects:
            raise KeyError("StaleHandle")
        return objects[hid]
    if kind in ("list", "tuple", "dict"):
        items = v.get("items", [])
        if kind == "dict":
            return dict(decode_value(pair, session_id) for pair in items)
        decoded = [decode_value(x, session_id) for x in items]
        return tuple(decoded) if kind == "tuple" else decoded
    raise ValueError(f"bad value kind: {kind}")


def resolve_target(target, session_id):
    if target.startswith("#"):
        hid = int(target[1:])
        objects = get_session(session_id)["objects"]
        if hid not in objects:
            raise KeyError("StaleHandle")
        return objects[hid]
    return get_callable(target)


def handle_request(req):
    cmd = req.get("cmd")
    session_id = req.get("session_id")
    try:
        if cmd == "ping":
            return {"kind": "ok", "req_id": req.get("req_id"), "value": {"kind": "value", "value": "pong"}}

        if cmd == "call_function":
            target = req.get("target")
            security_check(target.split(".")[-1])
            fn = resolve_target(target, session_id)
            args = [decode_value(a, session_id) for a in req.get("args", [])]
            kwargs = {k: decode_value(v, session_id) for k, v in req.get("kwargs", {}).items()}
            result = fn(*args, **kwargs)
            return {"kind": "ok", "req_id": req.get("req_id"), "value": encode_value(result, session_id)}

        if cmd == "call_method":
            recv = resolve_target(req.get("target"), session_id)
            method = req.get("method")
            security_check(method)
            args = [decode_value(a, session_id) for a in req.get("args", [])]
            kwargs = {k: decode_value(v, session_id) for k, v in req.get("kwargs", {}).items()}
            result = getattr(recv, method)(*args, **kwargs)
            return {"kind": "ok", "req_id": req.get("req_id"), "value": encode_value(result, session_id)}

        if cmd == "get_attribute":
            recv = resolve_target(req.get("target"), session_id)
            name = req.get("name")
            security_check(name)
            result = getattr(recv, name)
            return {"kind": "ok", "req_id": req.get("req_id"), "value": encode_value(result, session_id)}

        if cmd == "get_item":
            recv = resolve_target(req.get("target"), session_id)
            key = decode_value(req.get("key"), session_id)
            result = recv[key]
            return {"kind": "ok", "req_id": req.get("req_id"), "value": encode_value(result, session_id)}

        if cmd == "slice":
            recv = resolve_target(req.get("target"), session_id)
            start = decode_value(req["start"], session_id) if req.get("start") else None
            stop = decode_value(req["stop"], session_id) if req.get("stop") else None
            step = decode_value(req["step"], session_id) if req.get("step") else None
            if step == 0:
                raise ValueError("slice step cannot be zero")
            result = recv[start:stop:step]
            return {"kind": "ok", "req_id": req.get("req_id"), "value": encode_value(result, session_id)}

        if cmd == "iter":
            recv = resolve_target(req.get("target"), session_id)
            it = iter(recv)
            h = new_handle(it, session_id)
            get_session(session_id)["iterators"][h["handle"]] = it
            return {"kind": "ok", "req_id": req.get("req_id"), "value": h}

        if cmd == "iter_next_batch":
            hid = req.get("target")
            hid = int(hid[1:]) if isinstance(hid, str) and hid.startswith("#") else int(hid)
            it = get_session(session_id)["iterators"].get(hid)
            if it is None:
                raise KeyError("StaleHandle")
            batch_size = req.get("batch_size") or 1000
            items = []
            done = False
            for _ in range(batch_size):
                try:
                    items.append(encode_value(next(it), session_id))
                except StopIteration:
                    done = True
                    break
            return {
                "kind": "ok",
                "req_id": req.get("req_id"),
                "value": {"kind": "list", "items": items},
                "meta": {"done": done},
            }

        if cmd == "delete":
            hid = req.get("target")
            hid = int(hid[1:]) if isinstance(hid, str) and hid.startswith("#") else int(hid)
            session = get_session(session_id)
            session["objects"].pop(hid, None)
            session["iterators"].pop(hid, None)
            return {"kind": "ok", "req_id": req.get("req_id"), "value": {"kind": "value", "value": None}}

        return {
            "kind": "error",
            "req_id": req.get("req_id"),
            "error": {"code": "ProtocolError", "message": f"unknown cmd: {cmd}"},
        }

    except PermissionError as e:
        return {
            "kind": "error",
            "req_id": req.get("req_id"),
            "error": {"code": "SecurityViolation", "message": str(e), "op": echo(req)},
        }
    except KeyError as e:
        return {
            "kind": "error",
            "req_id": req.get("req_id"),
            "error": {"code": "StaleHandle", "message": str(e), "op": echo(req)},
        }
    except Exception as e:
        return {
            "kind": "error",
            "req_id": req.get("req_id"),
            "error": {
                "code": "PythonException",
                "py_type": type(e).__name__,
                "message": str(e),
                "traceback": traceback.format_exc(),
                "op": echo(req),
            },
        }


def echo(req):
    return {"cmd": req.get("cmd"), "target": req.get("target"), "args": req.get("args", [])}


def main():
    for line in sys.stdin:
        line = line.strip()
        if not line:
            continue
        try:
            req = json.loads(line)
        except json.JSONDecodeError as e:
            print(json.dumps({"kind": "error", "req_id": None, "error": {"code": "ProtocolError", "message": str(e)}}), flush=True)
            continue
        print(json.dumps(handle_request(req)), flush=True)


if __name__ == "__main__":
    main()
`

// RenderWorkerScript fills in the security policy's forbidden-name and
// forbidden-prefix sets and returns the companion script text ready to be
// written alongside a generated binary (spec §4.6 step 4).
func RenderWorkerScript(forbiddenNames, forbiddenPrefixes []string) string {
	names := make([]string, len(forbiddenNames))
	for i, n := range forbiddenNames {
		names[i] = fmt.Sprintf("%q", n)
	}
	prefixes := make([]string, len(forbiddenPrefixes))
	for i, p := range forbiddenPrefixes {
		prefixes[i] = fmt.Sprintf("%q", p)
	}
	return fmt.Sprintf(workerScriptTemplate, strings.Join(names, ", "), strings.Join(prefixes, ", "))
}
