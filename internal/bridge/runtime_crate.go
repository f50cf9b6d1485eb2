package bridge

import "fmt"

// RuntimeCrateSource renders the tnk_bridge client crate (C5, spec §4.5):
// process supervision, session id, NDJSON RPC, explicit handle deletion
// through Bridge::delete, and batched iteration. The crate keeps no handle
// registry and counts no references: dropping a Value sends nothing to the
// worker, and dropping a Bridge only kills the child. Generated programs
// `use tnk_bridge::{Value, TnkError, Bridge}` (see
// internal/codegen/generator.go's header) against the types this source
// defines.
func RuntimeCrateSource(workerPath string, batchSize, rpcTimeoutMS int) string {
	return fmt.Sprintf(`// Generated by tnk. Runtime crate for bridge-backed operations.
use serde::{Deserialize, Serialize};
use std::collections::HashMap;
use std::io::{BufRead, BufReader, Write};
use std::process::{Child, ChildStdin, ChildStdout, Command, Stdio};
use std::sync::atomic::{AtomicI64, Ordering};
use std::sync::Mutex;
use std::time::Duration;
use uuid::Uuid;

pub const DEFAULT_BATCH_SIZE: usize = %d;
pub const DEFAULT_RPC_TIMEOUT_MS: u64 = %d;
const WORKER_PATH: &str = %q;

#[derive(Debug, Serialize, Deserialize, Clone)]
pub struct Value {
    pub kind: String,
    #[serde(skip_serializing_if = "Option::is_none")]
    pub value: Option<serde_json::Value>,
    #[serde(skip_serializing_if = "Option::is_none")]
    pub items: Option<Vec<Value>>,
    #[serde(skip_serializing_if = "Option::is_none")]
    pub handle: Option<i64>,
    #[serde(rename = "str", skip_serializing_if = "Option::is_none")]
    pub str_value: Option<String>,
    #[serde(skip_serializing_if = "Option::is_none")]
    pub repr: Option<String>,
}

#[derive(Debug, Serialize, Deserialize, Clone)]
pub struct TnkError {
    pub kind: String,
    pub message: String,
    pub line: i64,
    #[serde(skip_serializing_if = "Option::is_none")]
    pub cause: Option<Box<TnkError>>,
}

impl std::fmt::Display for TnkError {
    fn fmt(&self, f: &mut std::fmt::Formatter<'_>) -> std::fmt::Result {
        write!(f, "[line {}] {}: {}", self.line, self.kind, self.message)?;
        let mut cause = self.cause.as_deref();
        while let Some(c) = cause {
            write!(f, "\nCaused by: [line {}] {}: {}", c.line, c.kind, c.message)?;
            cause = c.cause.as_deref();
        }
        Ok(())
    }
}

impl std::error::Error for TnkError {}

#[derive(Serialize)]
struct WireRequest<'a> {
    cmd: &'a str,
    session_id: &'a str,
    req_id: i64,
    #[serde(skip_serializing_if = "Option::is_none")]
    target: Option<String>,
    #[serde(skip_serializing_if = "Option::is_none")]
    method: Option<String>,
    #[serde(skip_serializing_if = "Option::is_none")]
    name: Option<String>,
    #[serde(skip_serializing_if = "Vec::is_empty", default)]
    args: Vec<Value>,
    #[serde(skip_serializing_if = "Option::is_none")]
    batch_size: Option<usize>,
}

#[derive(Deserialize)]
struct WireResponse {
    kind: String,
    #[serde(default)]
    value: Option<Value>,
    #[serde(default)]
    meta: Option<WireMeta>,
    #[serde(default)]
    error: Option<WireError>,
}

#[derive(Deserialize, Default)]
struct WireMeta {
    #[serde(default)]
    done: bool,
}

#[derive(Deserialize)]
struct WireError {
    code: String,
    message: String,
}

/// Forbidden names are rejected client-side before a request is ever sent
/// (spec §4.5 "Security": defense-in-depth ahead of the worker's own check).
const FORBIDDEN_NAMES: &[&str] = &["eval", "exec", "globals", "locals"];

fn security_check(name: &str) -> Result<(), TnkError> {
    if FORBIDDEN_NAMES.contains(&name) || name.starts_with('_') {
        return Err(TnkError {
            kind: "SecurityViolation".to_string(),
            message: format!("forbidden name: {}", name),
            line: 0,
            cause: None,
        });
    }
    Ok(())
}

/// Bridge supervises the companion worker process: one child per generated
/// binary instance, one session id, request ids issued monotonically so
/// responses can be cross-checked against FIFO ordering (spec §5
/// "Ordering guarantees").
pub struct Bridge {
    child: Mutex<Child>,
    stdin: Mutex<ChildStdin>,
    stdout: Mutex<BufReader<ChildStdout>>,
    session_id: String,
    next_req_id: AtomicI64,
    timeout: Duration,
}

impl Bridge {
    pub fn spawn() -> std::io::Result<Self> {
        Self::spawn_with(WORKER_PATH, Duration::from_millis(DEFAULT_RPC_TIMEOUT_MS))
    }

    pub fn spawn_with(worker_path: &str, timeout: Duration) -> std::io::Result<Self> {
        let mut child = Command::new("python3")
            .arg("-u")
            .arg(worker_path)
            .stdin(Stdio::piped())
            .stdout(Stdio::piped())
            .stderr(Stdio::inherit())
            .spawn()?;
        let stdin = child.stdin.take().expect("piped stdin");
        let stdout = BufReader::new(child.stdout.take().expect("piped stdout"));
        Ok(Bridge {
            child: Mutex::new(child),
            stdin: Mutex::new(stdin),
            stdout: Mutex::new(stdout),
            session_id: Uuid::new_v4().to_string(),
            next_req_id: AtomicI64::new(1),
            timeout,
        })
    }

    fn roundtrip(&self, req: &WireRequest) -> Result<WireResponse, TnkError> {
        let line = serde_json::to_string(req).map_err(|e| protocol_error(e.to_string()))?;
        {
            let mut stdin = self.stdin.lock().unwrap();
            writeln!(stdin, "{}", line).map_err(|e| crash_error(e.to_string()))?;
            stdin.flush().map_err(|e| crash_error(e.to_string()))?;
        }
        let mut buf = String::new();
        {
            let mut stdout = self.stdout.lock().unwrap();
            stdout
                .read_line(&mut buf)
                .map_err(|e| crash_error(e.to_string()))?;
        }
        if buf.is_empty() {
            self.kill();
            return Err(crash_error("worker closed stdout".to_string()));
        }
        serde_json::from_str(&buf).map_err(|e| protocol_error(e.to_string()))
    }

    fn kill(&self) {
        let _ = self.child.lock().unwrap().kill();
    }

    pub fn ping(&self) -> Result<(), TnkError> {
        let req_id = self.next_req_id.fetch_add(1, Ordering::SeqCst);
        let req = WireRequest {
            cmd: "ping",
            session_id: &self.session_id,
            req_id,
            target: None,
            method: None,
            name: None,
            args: vec![],
            batch_size: None,
        };
        self.roundtrip(&req).map(|_| ())
    }

    pub fn call_function(&self, target: &str, args: Vec<Value>) -> Result<Value, TnkError> {
        security_check(target.rsplit('.').next().unwrap_or(target))?;
        let req_id = self.next_req_id.fetch_add(1, Ordering::SeqCst);
        let req = WireRequest {
            cmd: "call_function",
            session_id: &self.session_id,
            req_id,
            target: Some(target.to_string()),
            method: None,
            name: None,
            args,
            batch_size: None,
        };
        self.finish(self.roundtrip(&req))
    }

    pub fn call_method(&self, recv: &Value, method: &str, args: Vec<Value>) -> Result<Value, TnkError> {
        security_check(method)?;
        let req_id = self.next_req_id.fetch_add(1, Ordering::SeqCst);
        let req = WireRequest {
            cmd: "call_method",
            session_id: &self.session_id,
            req_id,
            target: Some(handle_target(recv)),
            method: Some(method.to_string()),
            name: None,
            args,
            batch_size: None,
        };
        self.finish(self.roundtrip(&req))
    }

    pub fn get_attribute(&self, recv: &Value, name: &str) -> Result<Value, TnkError> {
        security_check(name)?;
        let req_id = self.next_req_id.fetch_add(1, Ordering::SeqCst);
        let req = WireRequest {
            cmd: "get_attribute",
            session_id: &self.session_id,
            req_id,
            target: Some(handle_target(recv)),
            method: None,
            name: Some(name.to_string()),
            args: vec![],
            batch_size: None,
        };
        self.finish(self.roundtrip(&req))
    }

    pub fn get_item(&self, recv: &Value, key: Value) -> Result<Value, TnkError> {
        let req_id = self.next_req_id.fetch_add(1, Ordering::SeqCst);
        let req = WireRequest {
            cmd: "get_item",
            session_id: &self.session_id,
            req_id,
            target: Some(handle_target(recv)),
            method: None,
            name: None,
            args: vec![key],
            batch_size: None,
        };
        self.finish(self.roundtrip(&req))
    }

    /// slice validates step != 0 client-side too, matching the worker's own
    /// check (spec §4.6 "Slice"), so the error surfaces without a round trip.
    pub fn slice(&self, recv: &Value, start: Option<Value>, stop: Option<Value>, step: Option<Value>) -> Result<Value, TnkError> {
        if let Some(Value { kind, value: Some(v), .. }) = &step {
            if kind == "value" && v.as_i64() == Some(0) {
                return Err(TnkError {
                    kind: "ValueError".to_string(),
                    message: "slice step cannot be zero".to_string(),
                    line: 0,
                    cause: None,
                });
            }
        }
        let mut args = vec![];
        for v in [start, stop, step].into_iter().flatten() {
            args.push(v);
        }
        let req_id = self.next_req_id.fetch_add(1, Ordering::SeqCst);
        let req = WireRequest {
            cmd: "slice",
            session_id: &self.session_id,
            req_id,
            target: Some(handle_target(recv)),
            method: None,
            name: None,
            args,
            batch_size: None,
        };
        self.finish(self.roundtrip(&req))
    }

    /// iter + iter_next_batch implement the batched streaming protocol
    /// (spec §4.5 "Iteration"): B elements per round trip, default 1000.
    pub fn iter(&self, recv: &Value) -> Result<BridgeIter<'_>, TnkError> {
        let req_id = self.next_req_id.fetch_add(1, Ordering::SeqCst);
        let req = WireRequest {
            cmd: "iter",
            session_id: &self.session_id,
            req_id,
            target: Some(handle_target(recv)),
            method: None,
            name: None,
            args: vec![],
            batch_size: None,
        };
        let v = self.finish(self.roundtrip(&req))?;
        Ok(BridgeIter {
            bridge: self,
            handle: v,
            buffer: Vec::new(),
            done: false,
        })
    }

    pub fn delete(&self, handle: &Value) {
        let req_id = self.next_req_id.fetch_add(1, Ordering::SeqCst);
        let req = WireRequest {
            cmd: "delete",
            session_id: &self.session_id,
            req_id,
            target: Some(handle_target(handle)),
            method: None,
            name: None,
            args: vec![],
            batch_size: None,
        };
        let _ = self.roundtrip(&req);
    }

    /// display renders a bridge value for f-string interpolation using its
    /// worker-supplied str(), falling back to repr() (spec §4.4 "bridge
    /// handles via their stored str() or repr() fallback").
    pub fn display(v: &Value) -> String {
        if let Some(s) = v.str_value.as_ref().or(v.repr.as_ref()) {
            return s.clone();
        }
        match &v.value {
            Some(inner) => inner.to_string(),
            None => v.kind.clone(),
        }
    }

    fn finish(&self, resp: Result<WireResponse, TnkError>) -> Result<Value, TnkError> {
        let resp = resp?;
        match resp.kind.as_str() {
            "ok" => Ok(resp.value.unwrap_or(Value { kind: "value".into(), value: None, items: None, handle: None, str_value: None, repr: None })),
            _ => {
                let e = resp.error.unwrap_or(WireError { code: "ProtocolError".into(), message: "missing error".into() });
                Err(TnkError { kind: e.code, message: e.message, line: 0, cause: None })
            }
        }
    }
}

fn handle_target(v: &Value) -> String {
    match v.handle {
        Some(h) => format!("#{}", h),
        None => v.kind.clone(),
    }
}

fn protocol_error(msg: String) -> TnkError {
    TnkError { kind: "ProtocolError".to_string(), message: msg, line: 0, cause: None }
}

fn crash_error(msg: String) -> TnkError {
    TnkError { kind: "WorkerCrash".to_string(), message: msg, line: 0, cause: None }
}

pub struct BridgeIter<'a> {
    bridge: &'a Bridge,
    handle: Value,
    buffer: Vec<Value>,
    done: bool,
}

impl<'a> Iterator for BridgeIter<'a> {
    type Item = Value;

    fn next(&mut self) -> Option<Value> {
        if self.buffer.is_empty() && !self.done {
            let req_id = self.bridge.next_req_id.fetch_add(1, Ordering::SeqCst);
            let req = WireRequest {
                cmd: "iter_next_batch",
                session_id: &self.bridge.session_id,
                req_id,
                target: Some(handle_target(&self.handle)),
                method: None,
                name: None,
                args: vec![],
                batch_size: Some(DEFAULT_BATCH_SIZE),
            };
            if let Ok(resp) = self.bridge.roundtrip(&req) {
                if let Some(meta) = &resp.meta {
                    self.done = meta.done;
                }
                if let Some(Value { items: Some(items), .. }) = resp.value {
                    self.buffer = items;
                }
            } else {
                self.done = true;
            }
        }
        if self.buffer.is_empty() {
            None
        } else {
            Some(self.buffer.remove(0))
        }
    }
}

impl Drop for Bridge {
    fn drop(&mut self) {
        self.kill();
    }
}
`, batchSize, rpcTimeoutMS, workerPath)
}
