package inspect_test

import (
	"errors"
	"math"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"github.com/luma/argot/inspect"
	"github.com/luma/argot/protocol"
)

var _ = Describe("JSON documents", func() {
	Describe("ToJSON()", func() {
		It("describes scalars", func() {
			doc, err := inspect.ToJSON(protocol.SimpleString("OK"))
			Expect(err).To(Succeed())
			Expect(string(doc)).To(Equal(`{"kind":"string","value":"OK"}`))

			doc, err = inspect.ToJSON(protocol.ErrorValue("ERR oops"))
			Expect(err).To(Succeed())
			Expect(string(doc)).To(Equal(`{"kind":"error","value":"ERR oops"}`))

			doc, err = inspect.ToJSON(protocol.Integer(1000))
			Expect(err).To(Succeed())
			Expect(string(doc)).To(Equal(`{"kind":"integer","value":1000}`))

			doc, err = inspect.ToJSON(protocol.Boolean(true))
			Expect(err).To(Succeed())
			Expect(string(doc)).To(Equal(`{"kind":"boolean","value":true}`))

			doc, err = inspect.ToJSON(protocol.Double(3.25))
			Expect(err).To(Succeed())
			Expect(string(doc)).To(Equal(`{"kind":"double","value":3.25}`))

			doc, err = inspect.ToJSON(protocol.Null())
			Expect(err).To(Succeed())
			Expect(string(doc)).To(Equal(`{"kind":"null"}`))
		})

		It("carries text bulk strings verbatim", func() {
			doc, err := inspect.ToJSON(protocol.BulkStringFromString("hello"))
			Expect(err).To(Succeed())
			Expect(string(doc)).To(Equal(`{"kind":"bulk","value":"hello"}`))
		})

		It("carries binary bulk strings base64 encoded", func() {
			doc, err := inspect.ToJSON(protocol.BulkString([]byte{0x00, 0xff}))
			Expect(err).To(Succeed())
			Expect(string(doc)).To(Equal(`{"kind":"bulk","value":"AP8=","encoding":"base64"}`))
		})

		It("keeps null forms distinct from empty ones", func() {
			doc, err := inspect.ToJSON(protocol.NullBulkString())
			Expect(err).To(Succeed())
			Expect(string(doc)).To(Equal(`{"kind":"bulk","value":null}`))

			doc, err = inspect.ToJSON(protocol.NullArray())
			Expect(err).To(Succeed())
			Expect(string(doc)).To(Equal(`{"kind":"array","value":null}`))

			doc, err = inspect.ToJSON(protocol.Array())
			Expect(err).To(Succeed())
			Expect(string(doc)).To(Equal(`{"kind":"array","value":[]}`))
		})

		It("describes non finite doubles as strings", func() {
			doc, err := inspect.ToJSON(protocol.Double(math.Inf(1)))
			Expect(err).To(Succeed())
			Expect(string(doc)).To(Equal(`{"kind":"double","value":"inf"}`))

			doc, err = inspect.ToJSON(protocol.Double(math.NaN()))
			Expect(err).To(Succeed())
			Expect(string(doc)).To(Equal(`{"kind":"double","value":"nan"}`))
		})

		It("nests aggregate children as documents", func() {
			doc, err := inspect.ToJSON(protocol.Array(
				protocol.SimpleString("OK"),
				protocol.Integer(1),
			))
			Expect(err).To(Succeed())
			Expect(string(doc)).To(Equal(`{"kind":"array","value":[{"kind":"string","value":"OK"},{"kind":"integer","value":1}]}`))
		})

		It("describes map entries as key value documents", func() {
			doc, err := inspect.ToJSON(protocol.MapValue(
				protocol.MapEntry{Key: protocol.SimpleString("k"), Value: protocol.Integer(1)},
			))
			Expect(err).To(Succeed())
			Expect(string(doc)).To(Equal(`{"kind":"map","value":[{"key":{"kind":"string","value":"k"},"value":{"kind":"integer","value":1}}]}`))
		})

		It("rejects the zero value", func() {
			_, err := inspect.ToJSON(protocol.Value{})
			Expect(errors.Is(err, protocol.ErrUnknownKind)).To(BeTrue())
		})
	})

	Describe("FromJSON()", func() {
		It("round-trips every kind", func() {
			values := []protocol.Value{
				protocol.SimpleString("OK"),
				protocol.ErrorValue("ERR wrongtype"),
				protocol.Integer(-42),
				protocol.BulkStringFromString("hello"),
				protocol.BulkString([]byte{0x00, 0xff, 0x0d}),
				protocol.BulkString([]byte{}),
				protocol.NullBulkString(),
				protocol.Boolean(false),
				protocol.Double(-2.5),
				protocol.Double(math.Inf(-1)),
				protocol.Null(),
				protocol.Array(),
				protocol.NullArray(),
				protocol.SetValue(protocol.Integer(1), protocol.Integer(2)),
				protocol.MapValue(
					protocol.MapEntry{Key: protocol.BulkStringFromString("k"), Value: protocol.NullBulkString()},
				),
				protocol.Array(
					protocol.Array(protocol.Boolean(true)),
					protocol.BulkStringFromString("deep"),
				),
			}

			for _, value := range values {
				doc, err := inspect.ToJSON(value)
				Expect(err).To(Succeed())

				back, err := inspect.FromJSON(doc)
				Expect(err).To(Succeed())
				Expect(back).To(Equal(value), string(doc))
			}
		})

		It("round-trips NaN", func() {
			doc, err := inspect.ToJSON(protocol.Double(math.NaN()))
			Expect(err).To(Succeed())

			back, err := inspect.FromJSON(doc)
			Expect(err).To(Succeed())
			Expect(math.IsNaN(back.Float())).To(BeTrue())
		})

		It("accepts hand written documents", func() {
			v, err := inspect.FromJSON([]byte(`{"kind": "integer", "value": 7}`))
			Expect(err).To(Succeed())
			Expect(v).To(Equal(protocol.Integer(7)))
		})

		It("rejects input that is not JSON", func() {
			_, err := inspect.FromJSON([]byte(`{"kind":`))
			Expect(errors.Is(err, inspect.ErrInvalidDocument)).To(BeTrue())
		})

		It("rejects documents that are not objects", func() {
			_, err := inspect.FromJSON([]byte(`42`))
			Expect(errors.Is(err, inspect.ErrInvalidDocument)).To(BeTrue())
		})

		It("rejects documents without a kind", func() {
			_, err := inspect.FromJSON([]byte(`{"value":1}`))
			Expect(errors.Is(err, inspect.ErrInvalidDocument)).To(BeTrue())
		})

		It("rejects unknown kinds", func() {
			_, err := inspect.FromJSON([]byte(`{"kind":"verbatim","value":"x"}`))
			Expect(errors.Is(err, inspect.ErrInvalidDocument)).To(BeTrue())
		})

		It("rejects payloads of the wrong JSON type", func() {
			for _, doc := range []string{
				`{"kind":"integer","value":"7"}`,
				`{"kind":"boolean","value":"true"}`,
				`{"kind":"bulk","value":7}`,
				`{"kind":"double","value":"fast"}`,
				`{"kind":"array","value":7}`,
				`{"kind":"map","value":{"k":"v"}}`,
			} {
				_, err := inspect.FromJSON([]byte(doc))
				Expect(errors.Is(err, inspect.ErrInvalidDocument)).To(BeTrue(), doc)
			}
		})

		It("rejects a null set", func() {
			_, err := inspect.FromJSON([]byte(`{"kind":"set","value":null}`))
			Expect(errors.Is(err, inspect.ErrInvalidDocument)).To(BeTrue())
		})

		It("rejects unknown bulk encodings", func() {
			_, err := inspect.FromJSON([]byte(`{"kind":"bulk","value":"AP8=","encoding":"hex"}`))
			Expect(errors.Is(err, inspect.ErrInvalidDocument)).To(BeTrue())
		})

		It("rejects broken base64 payloads", func() {
			_, err := inspect.FromJSON([]byte(`{"kind":"bulk","value":"!!!","encoding":"base64"}`))
			Expect(errors.Is(err, inspect.ErrInvalidDocument)).To(BeTrue())
		})

		It("rejects map pairs that are not documents", func() {
			_, err := inspect.FromJSON([]byte(`{"kind":"map","value":[{"key":1,"value":2}]}`))
			Expect(errors.Is(err, inspect.ErrInvalidDocument)).To(BeTrue())
		})
	})
})
