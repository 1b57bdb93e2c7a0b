package protocol_test

import (
	"errors"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"github.com/luma/argot/protocol"
)

var _ = Describe("Commands", func() {
	Describe("ParseCommand()", func() {
		It("extracts the name and arguments from an array of bulk strings", func() {
			data := protocol.EncodeCommand("get", "mykey")

			cmd, err := protocol.ParseCommandBytes(data)
			Expect(err).To(Succeed())
			Expect(cmd.Name).To(Equal("GET"))
			Expect(cmd.Args).To(Equal([][]byte{[]byte("mykey")}))
		})

		It("keeps every argument in order", func() {
			data := protocol.EncodeCommand("set", "mykey", "myvalue")

			cmd, err := protocol.ParseCommandBytes(data)
			Expect(err).To(Succeed())
			Expect(cmd.Name).To(Equal("SET"))
			Expect(cmd.Args).To(Equal([][]byte{[]byte("mykey"), []byte("myvalue")}))
		})

		It("parses a command without arguments", func() {
			data := protocol.EncodeCommand("ping")

			cmd, err := protocol.ParseCommandBytes(data)
			Expect(err).To(Succeed())
			Expect(cmd.Name).To(Equal("PING"))
			Expect(cmd.Args).To(BeEmpty())
		})

		It("upper-cases the name but leaves arguments alone", func() {
			v := protocol.Array(
				protocol.BulkStringFromString("SeT"),
				protocol.BulkStringFromString("MyKey"),
			)

			cmd, err := protocol.ParseCommand(v)
			Expect(err).To(Succeed())
			Expect(cmd.Name).To(Equal("SET"))
			Expect(cmd.Args).To(Equal([][]byte{[]byte("MyKey")}))
		})

		It("accepts binary arguments", func() {
			v := protocol.Array(
				protocol.BulkStringFromString("set"),
				protocol.BulkString([]byte{0x00, 0xff}),
			)

			cmd, err := protocol.ParseCommand(v)
			Expect(err).To(Succeed())
			Expect(cmd.Args).To(Equal([][]byte{{0x00, 0xff}}))
		})

		It("rejects values that are not arrays", func() {
			_, err := protocol.ParseCommand(protocol.Integer(1))
			Expect(errors.Is(err, protocol.ErrMalformed)).To(BeTrue())
		})

		It("rejects the null array", func() {
			_, err := protocol.ParseCommand(protocol.NullArray())
			Expect(errors.Is(err, protocol.ErrMalformed)).To(BeTrue())
		})

		It("rejects the empty array", func() {
			_, err := protocol.ParseCommand(protocol.Array())
			Expect(errors.Is(err, protocol.ErrMalformed)).To(BeTrue())
		})

		It("rejects elements that are not bulk strings", func() {
			v := protocol.Array(
				protocol.BulkStringFromString("get"),
				protocol.Integer(1),
			)

			_, err := protocol.ParseCommand(v)
			Expect(errors.Is(err, protocol.ErrMalformed)).To(BeTrue())
		})

		It("rejects null bulk string elements", func() {
			v := protocol.Array(
				protocol.BulkStringFromString("get"),
				protocol.NullBulkString(),
			)

			_, err := protocol.ParseCommand(v)
			Expect(errors.Is(err, protocol.ErrMalformed)).To(BeTrue())
		})
	})

	Describe("ParseCommandBytes()", func() {
		It("reports truncated input as incomplete", func() {
			_, err := protocol.ParseCommandBytes([]byte("*2\r\n$3\r\nGET\r\n"))
			Expect(err).To(MatchError(protocol.ErrIncomplete))
		})

		It("ignores trailing bytes after the first value", func() {
			cmd, err := protocol.ParseCommandBytes([]byte("*1\r\n$4\r\nPING\r\n+extra\r\n"))
			Expect(err).To(Succeed())
			Expect(cmd.Name).To(Equal("PING"))
		})
	})

	Describe("String()", func() {
		It("joins the name and arguments with spaces", func() {
			cmd := protocol.Command{
				Name: "SET",
				Args: [][]byte{[]byte("mykey"), []byte("myvalue")},
			}
			Expect(cmd.String()).To(Equal("SET mykey myvalue"))
		})

		It("prints a bare name when there are no arguments", func() {
			cmd := protocol.Command{Name: "PING"}
			Expect(cmd.String()).To(Equal("PING"))
		})
	})
})
