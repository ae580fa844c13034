package server

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/broady/abi2ts/server/servertest"
)

const tokenABI = `{
	"version": "eosio::abi/1.1",
	"types": [{"new_type_name": "account_name", "type": "name"}],
	"structs": [
		{"name": "transfer", "base": "", "fields": [
			{"name": "from", "type": "account_name"},
			{"name": "to", "type": "account_name"},
			{"name": "quantity", "type": "asset"},
			{"name": "memo", "type": "string"}
		]},
		{"name": "account", "base": "", "fields": [{"name": "balance", "type": "asset"}]}
	],
	"tables": [{"name": "accounts", "type": "account", "index_type": "i64"}]
}`

func newTestApp() http.Handler {
	app := NewApp()
	Mount(app)
	return app.Handler()
}

func TestTransformEndpoint(t *testing.T) {
	h := newTestApp()

	t.Run("default options", func(t *testing.T) {
		w := servertest.NewRequest().POST("/Abi/Transform").
			WithJSON(map[string]any{"abi": json.RawMessage(tokenABI)}).
			Do(h)
		servertest.AssertStatus(t, w, http.StatusOK)

		var res TransformResponse
		servertest.DecodeResult(t, w, &res)
		require.GreaterOrEqual(t, len(res.Lines), 6)
		assert.Equal(t, []string{
			"interface Transfer {",
			"    From: string;",
			"    To: string;",
			"    Quantity: string;",
			"    Memo: string;",
			"}",
		}, res.Lines[:6])
		assert.Equal(t, 2, res.Structs)
		assert.Equal(t, 0, res.Aliases)
	})

	t.Run("partial options keep defaults", func(t *testing.T) {
		w := servertest.NewRequest().POST("/Abi/Transform").
			WithJSON(map[string]any{
				"abi":     json.RawMessage(tokenABI),
				"options": map[string]any{"naming": "snake", "export": true, "emit_aliases": true},
			}).
			Do(h)
		servertest.AssertStatus(t, w, http.StatusOK)

		var res TransformResponse
		servertest.DecodeResult(t, w, &res)
		assert.Equal(t, "export interface transfer {", res.Lines[0])
		assert.Equal(t, "    from: string;", res.Lines[1])
		assert.Equal(t, "export type account_name = string;", res.Lines[len(res.Lines)-1])
		assert.Equal(t, 1, res.Aliases)
	})

	t.Run("invalid options", func(t *testing.T) {
		w := servertest.NewRequest().POST("/Abi/Transform").
			WithJSON(map[string]any{
				"abi":     json.RawMessage(tokenABI),
				"options": map[string]any{"naming": "kebab"},
			}).
			Do(h)
		servertest.AssertStatus(t, w, http.StatusBadRequest)
		e := servertest.AssertError(t, w, "invalid_argument")
		assert.Contains(t, e.Message, "Naming")
	})

	t.Run("missing abi", func(t *testing.T) {
		w := servertest.NewRequest().POST("/Abi/Transform").WithJSON(map[string]any{}).Do(h)
		servertest.AssertStatus(t, w, http.StatusBadRequest)
		servertest.AssertError(t, w, "invalid_argument")
	})

	t.Run("malformed document", func(t *testing.T) {
		w := servertest.NewRequest().POST("/Abi/Transform").
			WithJSON(map[string]any{"abi": map[string]any{"structs": []any{}}}).
			Do(h)
		servertest.AssertStatus(t, w, http.StatusBadRequest)
		e := servertest.AssertError(t, w, "invalid_argument")
		assert.Equal(t, "malformed_document", e.Details["reason"])
	})

	t.Run("resolution error", func(t *testing.T) {
		doc := `{"version": "v", "structs": [{"name": "a", "base": "b", "fields": []}, {"name": "b", "base": "a", "fields": []}]}`
		w := servertest.NewRequest().POST("/Abi/Transform").
			WithJSON(map[string]any{"abi": json.RawMessage(doc)}).
			Do(h)
		servertest.AssertStatus(t, w, http.StatusBadRequest)
		e := servertest.AssertError(t, w, "invalid_argument")
		assert.Equal(t, "inheritance_cycle", e.Details["reason"])
		assert.Equal(t, []any{"a", "b", "a"}, e.Details["path"])
	})
}

func TestResolveEndpoint(t *testing.T) {
	h := newTestApp()

	tests := []struct {
		expr string
		want ResolveResponse
	}{
		{
			expr: "uint64[]",
			want: ResolveResponse{Kind: "Array", Descriptor: "Array(Primitive(uint64))", Target: "uint64", TypeScript: "(number | string)[]"},
		},
		{
			expr: "account_name?",
			want: ResolveResponse{Kind: "Optional", Descriptor: "Optional(Primitive(name))", Target: "name", TypeScript: "string | undefined"},
		},
		{
			expr: "transfer$",
			want: ResolveResponse{Kind: "Extension", Descriptor: "Extension(Reference(transfer))", Target: "transfer", TypeScript: "Transfer | undefined"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			w := servertest.NewRequest().POST("/Abi/Resolve").
				WithJSON(map[string]any{"abi": json.RawMessage(tokenABI), "type": tt.expr}).
				Do(h)
			servertest.AssertStatus(t, w, http.StatusOK)

			var res ResolveResponse
			servertest.DecodeResult(t, w, &res)
			assert.Equal(t, tt.want, res)
		})
	}

	t.Run("unknown type", func(t *testing.T) {
		w := servertest.NewRequest().POST("/Abi/Resolve").
			WithJSON(map[string]any{"abi": json.RawMessage(tokenABI), "type": "uint256"}).
			Do(h)
		servertest.AssertStatus(t, w, http.StatusBadRequest)
		e := servertest.AssertError(t, w, "invalid_argument")
		assert.Equal(t, "unknown_type", e.Details["reason"])
		assert.Equal(t, "uint256", e.Details["name"])
	})

	t.Run("marker only", func(t *testing.T) {
		w := servertest.NewRequest().POST("/Abi/Resolve").
			WithJSON(map[string]any{"abi": json.RawMessage(tokenABI), "type": "[]"}).
			Do(h)
		e := servertest.AssertError(t, w, "invalid_argument")
		assert.Equal(t, "malformed_type", e.Details["reason"])
	})
}

func TestCheckEndpoint(t *testing.T) {
	h := newTestApp()

	t.Run("valid", func(t *testing.T) {
		w := servertest.NewRequest().POST("/Abi/Check").
			WithJSON(map[string]any{"abi": json.RawMessage(tokenABI)}).
			Do(h)
		servertest.AssertStatus(t, w, http.StatusOK)

		var res CheckResponse
		servertest.DecodeResult(t, w, &res)
		assert.True(t, res.Valid)
		assert.Empty(t, res.Problems)
	})

	t.Run("problems", func(t *testing.T) {
		doc := `{
			"version": "v",
			"types": [{"new_type_name": "a", "type": "b"}, {"new_type_name": "b", "type": "a"}],
			"tables": [{"name": "rows", "type": "row", "index_type": "i64"}]
		}`
		w := servertest.NewRequest().POST("/Abi/Check").
			WithJSON(map[string]any{"abi": json.RawMessage(doc)}).
			Do(h)
		servertest.AssertStatus(t, w, http.StatusOK)

		var res CheckResponse
		servertest.DecodeResult(t, w, &res)
		assert.False(t, res.Valid)
		require.Len(t, res.Problems, 3)
		assert.Equal(t, "cyclic_alias", res.Problems[0].Code)
		assert.Equal(t, "cyclic_alias", res.Problems[1].Code)
		assert.Equal(t, "unknown_type", res.Problems[2].Code)
		assert.Equal(t, `table rows: unknown type "row"`, res.Problems[2].Message)
	})
}

func TestFormatEndpoint(t *testing.T) {
	h := newTestApp()

	tests := []struct {
		name   string
		naming string
		prefix string
		want   string
	}{
		{"currency_stats", "", "", "CurrencyStats"},
		{"currency_stats", "pascal", "I", "ICurrencyStats"},
		{"currency_stats", "camel", "", "currencyStats"},
		{"CurrencyStats", "snake", "", "currency_stats"},
		{"_id", "pascal", "", "_Id"},
	}

	for _, tt := range tests {
		t.Run(tt.name+"/"+tt.naming, func(t *testing.T) {
			b := servertest.NewRequest().GET("/Naming/Format").WithQuery("name", tt.name)
			if tt.naming != "" {
				b.WithQuery("naming", tt.naming)
			}
			if tt.prefix != "" {
				b.WithQuery("prefix", tt.prefix)
			}
			w := b.Do(h)
			servertest.AssertStatus(t, w, http.StatusOK)

			var res FormatResponse
			servertest.DecodeResult(t, w, &res)
			assert.Equal(t, tt.want, res.Identifier)
		})
	}

	t.Run("unknown convention", func(t *testing.T) {
		w := servertest.NewRequest().GET("/Naming/Format").WithQuery("name", "a").WithQuery("naming", "kebab").Do(h)
		servertest.AssertStatus(t, w, http.StatusBadRequest)
		servertest.AssertError(t, w, "invalid_argument")
	})

	t.Run("missing name", func(t *testing.T) {
		w := servertest.NewRequest().GET("/Naming/Format").Do(h)
		servertest.AssertStatus(t, w, http.StatusBadRequest)
		servertest.AssertError(t, w, "invalid_argument")
	})
}
