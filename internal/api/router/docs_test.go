package router

import (
	"encoding/json"
	"strings"
	"testing"

	"vtube-go/api/openapi"
)

// swaggerPath 将 gin 路由转换为 swagger 路径：/api/v1/videos/:id -> /videos/{id}
func swaggerPath(ginPath string) string {
	segs := strings.Split(strings.TrimPrefix(ginPath, openapi.SwaggerInfo.BasePath), "/")
	for i, seg := range segs {
		if strings.HasPrefix(seg, ":") {
			segs[i] = "{" + seg[1:] + "}"
		}
	}
	return strings.Join(segs, "/")
}

// TestRoutesDocumented 文档中的接口与注册的路由一一对应
func TestRoutesDocumented(t *testing.T) {
	r := newTestEngine(t)

	var doc struct {
		Paths map[string]map[string]json.RawMessage `json:"paths"`
	}
	if err := json.Unmarshal([]byte(openapi.SwaggerInfo.ReadDoc()), &doc); err != nil {
		t.Fatalf("parse swagger doc: %v", err)
	}

	documented := make(map[string]bool)
	for path, ops := range doc.Paths {
		for method := range ops {
			documented[strings.ToUpper(method)+" "+path] = true
		}
	}

	registered := make(map[string]bool)
	for _, route := range r.Routes() {
		if !strings.HasPrefix(route.Path, openapi.SwaggerInfo.BasePath+"/") {
			continue
		}
		key := route.Method + " " + swaggerPath(route.Path)
		registered[key] = true
		if !documented[key] {
			t.Errorf("route %s is not documented", key)
		}
	}

	for key := range documented {
		if !registered[key] {
			t.Errorf("documented %s has no route", key)
		}
	}
}
