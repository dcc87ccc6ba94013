//go:build js && wasm

package main

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"path"
	"syscall/js"
	"time"

	"natkey/internal/adapter/analyzer"
	"natkey/internal/adapter/calendar"
	"natkey/internal/adapter/memstore"
	"natkey/internal/domain"
	"natkey/internal/usecase"
)

var store *memstore.MemoryStore

func init() {
	store = memstore.NewMemoryStore()
}

func main() {
	c := make(chan struct{})

	js.Global().Set("natkeySplit", js.FuncOf(split))
	js.Global().Set("natkeyField", js.FuncOf(field))
	js.Global().Set("natkeyPut", js.FuncOf(put))
	js.Global().Set("natkeyList", js.FuncOf(list))
	js.Global().Set("natkeyClear", js.FuncOf(clearKeys))

	<-c
}

// jsDate exposes a JavaScript Date through port.DateLike. Fields are read
// in local time, matching getFullYear/getMonth/getDate.
type jsDate struct {
	v js.Value
}

func (d jsDate) Year() int         { return d.v.Call("getFullYear").Int() }
func (d jsDate) Month() time.Month { return time.Month(d.v.Call("getMonth").Int() + 1) }
func (d jsDate) Day() int          { return d.v.Call("getDate").Int() }

// hostValue wraps JS Dates so they pass the date-like capability check;
// every other value is passed through opaque and will be rejected.
func hostValue(v js.Value) any {
	if v.Type() == js.TypeObject && v.InstanceOf(js.Global().Get("Date")) {
		return jsDate{v: v}
	}
	return v
}

func split(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return makeError("usage: natkeySplit(text)")
	}

	tokens := analyzer.Tokenize(args[0].String())
	if tokens == nil {
		tokens = []domain.Token{}
	}
	return makeResult(map[string]interface{}{
		"tokens": tokens,
	})
}

func field(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return makeError("usage: natkeyField(date, 'year'|'month'|'day')")
	}

	f, err := domain.ParseField(args[1].String())
	if err != nil {
		return makeError(err.Error())
	}
	v, err := calendar.Extract(hostValue(args[0]), f)
	if err != nil {
		return makeError(err.Error())
	}

	return makeResult(map[string]interface{}{
		"field": f.String(),
		"value": v,
	})
}

func put(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return makeError("usage: natkeyPut(path, modifiedDate)")
	}

	p := args[0].String()
	date, err := calendar.ExtractAll(hostValue(args[1]))
	if err != nil {
		return makeError(err.Error())
	}

	rec := domain.KeyRecord{
		ID:      generateID(p),
		Path:    p,
		Name:    path.Base(p),
		ModTime: time.UnixMilli(int64(args[1].Call("getTime").Float())),
		Tokens:  analyzer.Tokenize(path.Base(p)),
		Date:    date,
	}
	if err := store.PutRecord(rec); err != nil {
		return makeError("store failed: " + err.Error())
	}

	return makeResult(map[string]interface{}{
		"success": true,
		"path":    p,
	})
}

func list(this js.Value, args []js.Value) interface{} {
	prefix := ""
	if len(args) > 0 {
		prefix = args[0].String()
	}

	recs, err := usecase.NewKeysUseCase(store).List(prefix)
	if err != nil {
		return makeError(err.Error())
	}

	output := make([]map[string]interface{}, 0, len(recs))
	for _, rec := range recs {
		output = append(output, map[string]interface{}{
			"path":   rec.Path,
			"date":   rec.Date.String(),
			"tokens": rec.Tokens,
		})
	}

	return makeResult(map[string]interface{}{
		"keys": output,
	})
}

func clearKeys(this js.Value, args []js.Value) interface{} {
	store = memstore.NewMemoryStore()
	return makeResult(map[string]interface{}{
		"success": true,
	})
}

func generateID(p string) string {
	hash := sha256.Sum256([]byte(p))
	return hex.EncodeToString(hash[:8])
}

func makeError(msg string) interface{} {
	result, _ := json.Marshal(map[string]interface{}{
		"error": msg,
	})
	return string(result)
}

func makeResult(data map[string]interface{}) interface{} {
	result, _ := json.Marshal(data)
	return string(result)
}
