package parser

import (
	"github.com/evanacox/dawn/internal/ir"
	"github.com/evanacox/dawn/internal/token"
	"github.com/evanacox/dawn/internal/types"
)

func (p *parser) parseInst() {
	name := ""
	if tok := p.peek("instruction"); tok.Kind == token.ValLabel {
		name = p.parseDefName()
		p.expect(token.Eq, "'=' after value name")
	}

	tok := p.next("instruction")
	var value ir.Value

	switch tok.Kind {
	case token.KwPhi:
		value = p.parsePhi()
	case token.KwCall:
		value = p.parseCall()
	case token.KwSel:
		value = p.parseSel()
	case token.KwBr:
		value = p.parseBr()
	case token.KwCbr:
		value = p.parseCbr()
	case token.KwRet:
		value = p.parseRet()
	case token.KwUnreachable:
		value = p.ib.CreateUnreachable()
	case token.KwAnd:
		value = p.parseIntBoolBinary("and", func(l, r ir.Value) ir.Value { return p.ib.CreateAnd(l, r) })
	case token.KwOr:
		value = p.parseIntBoolBinary("or", func(l, r ir.Value) ir.Value { return p.ib.CreateOr(l, r) })
	case token.KwXor:
		value = p.parseIntBoolBinary("xor", func(l, r ir.Value) ir.Value { return p.ib.CreateXor(l, r) })
	case token.KwShl:
		value = p.parseIntBoolBinary("shl", func(l, r ir.Value) ir.Value { return p.ib.CreateShl(l, r) })
	case token.KwLShr:
		value = p.parseIntBoolBinary("lshr", func(l, r ir.Value) ir.Value { return p.ib.CreateLShr(l, r) })
	case token.KwAShr:
		value = p.parseIntBoolBinary("ashr", func(l, r ir.Value) ir.Value { return p.ib.CreateAShr(l, r) })
	case token.KwIAdd:
		value = p.parseIntBinary("iadd", func(l, r ir.Value) ir.Value { return p.ib.CreateIAdd(l, r) })
	case token.KwISub:
		value = p.parseIntBinary("isub", func(l, r ir.Value) ir.Value { return p.ib.CreateISub(l, r) })
	case token.KwIMul:
		value = p.parseIntBinary("imul", func(l, r ir.Value) ir.Value { return p.ib.CreateIMul(l, r) })
	case token.KwUDiv:
		value = p.parseIntBinary("udiv", func(l, r ir.Value) ir.Value { return p.ib.CreateUDiv(l, r) })
	case token.KwSDiv:
		value = p.parseIntBinary("sdiv", func(l, r ir.Value) ir.Value { return p.ib.CreateSDiv(l, r) })
	case token.KwURem:
		value = p.parseIntBinary("urem", func(l, r ir.Value) ir.Value { return p.ib.CreateURem(l, r) })
	case token.KwSRem:
		value = p.parseIntBinary("srem", func(l, r ir.Value) ir.Value { return p.ib.CreateSRem(l, r) })
	case token.KwFNeg:
		value = p.parseFloatBinary("fneg", func(l, r ir.Value) ir.Value { return p.ib.CreateFNeg(l, r) })
	case token.KwFAdd:
		value = p.parseFloatBinary("fadd", func(l, r ir.Value) ir.Value { return p.ib.CreateFAdd(l, r) })
	case token.KwFSub:
		value = p.parseFloatBinary("fsub", func(l, r ir.Value) ir.Value { return p.ib.CreateFSub(l, r) })
	case token.KwFMul:
		value = p.parseFloatBinary("fmul", func(l, r ir.Value) ir.Value { return p.ib.CreateFMul(l, r) })
	case token.KwFDiv:
		value = p.parseFloatBinary("fdiv", func(l, r ir.Value) ir.Value { return p.ib.CreateFDiv(l, r) })
	case token.KwFRem:
		value = p.parseFloatBinary("frem", func(l, r ir.Value) ir.Value { return p.ib.CreateFRem(l, r) })
	case token.KwICmp:
		value = p.parseICmp()
	case token.KwFCmp:
		value = p.parseFCmp()
	case token.KwLoad:
		value = p.parseLoad()
	case token.KwStore:
		value = p.parseStore()
	case token.KwAlloca:
		value = p.parseAlloca()
	case token.KwIndex:
		value = p.parseOffset()
	case token.KwExtract:
		value = p.parseExtract()
	case token.KwInsert:
		value = p.parseInsert()
	case token.KwElemPtr:
		value = p.parseElemPtr()
	case token.KwSext:
		value = p.parseExtension("sext", func(ty *types.Type, v ir.Value) ir.Value {
			return p.ib.CreateSext(ty, v)
		})
	case token.KwZext:
		value = p.parseExtension("zext", func(ty *types.Type, v ir.Value) ir.Value {
			return p.ib.CreateZext(ty, v)
		})
	case token.KwTrunc:
		value = p.parseTrunc()
	case token.KwItob:
		value = p.parseItob()
	case token.KwBtoi:
		value = p.parseBtoi()
	case token.KwSitof:
		value = p.parseIntToFloat("sitof", func(ty *types.Type, v ir.Value) ir.Value {
			return p.ib.CreateSIToF(ty, v)
		})
	case token.KwUitof:
		value = p.parseIntToFloat("uitof", func(ty *types.Type, v ir.Value) ir.Value {
			return p.ib.CreateUIToF(ty, v)
		})
	case token.KwFtosi:
		value = p.parseFloatToInt("ftosi", func(ty *types.Type, v ir.Value) ir.Value {
			return p.ib.CreateFToSI(ty, v)
		})
	case token.KwFtoui:
		value = p.parseFloatToInt("ftoui", func(ty *types.Type, v ir.Value) ir.Value {
			return p.ib.CreateFToUI(ty, v)
		})
	case token.KwItop:
		value = p.parseItop()
	case token.KwPtoi:
		value = p.parsePtoi()
	default:
		p.errorf("expected instruction name but got '%s' instead", tok.Text)
	}

	if name != "" {
		p.values[name] = value
		return
	}
	switch value.Kind() {
	case ir.KindCall, ir.KindStore:
	default:
		if !value.Kind().IsTerminator() {
			p.errorf("expected instruction to be labeled")
		}
	}
}

// Binary instruction families. The class of the lhs type decides legality;
// the builder would enforce the same invariants by aborting, so the parser
// checks first and reports a plain parse error.

func (p *parser) parseIntBoolBinary(op string, create func(l, r ir.Value) ir.Value) ir.Value {
	lhs, rhs := p.parseBinopOperands()
	if !lhs.Type().IsInt() && !lhs.Type().IsBool() {
		p.errorf("expected operand type to be integral or 'bool' but got '%s'", lhs.Type())
	}
	return create(lhs, rhs)
}

func (p *parser) parseIntBinary(op string, create func(l, r ir.Value) ir.Value) ir.Value {
	lhs, rhs := p.parseBinopOperands()
	if !lhs.Type().IsInt() {
		p.errorf("expected operand type to be integral but got '%s'", lhs.Type())
	}
	return create(lhs, rhs)
}

func (p *parser) parseFloatBinary(op string, create func(l, r ir.Value) ir.Value) ir.Value {
	lhs, rhs := p.parseBinopOperands()
	if !lhs.Type().IsFloat() {
		p.errorf("expected operand type to be floating-point but got '%s'", lhs.Type())
	}
	return create(lhs, rhs)
}

func (p *parser) parsePhi() ir.Value {
	ty := p.parseTy()
	if ty.IsVoid() {
		p.errorf("'phi' cannot have void type")
	}
	phi := p.ib.CreatePhi(ty)
	p.worklist = append(p.worklist, p.parsePhiIncoming(phi))
	for p.peek("'phi' incoming list").Kind == token.Comma {
		p.next("','")
		p.worklist = append(p.worklist, p.parsePhiIncoming(phi))
	}
	return phi
}

// parsePhiIncoming defers resolution: phis may reference values and blocks
// defined after the phi itself, e.g. the backedge of a loop:
//
//	%bb0:
//	    $1 = phi i32 [ 0, %entry ],
//	                 [ $3, %bb1 ]
func (p *parser) parsePhiIncoming(phi *ir.Phi) phiEntry {
	p.expect(token.LBracket, "incoming branch for 'phi'")

	entry := phiEntry{phi: phi}
	if tok := p.peek("'phi' incoming value"); tok.Kind == token.ValLabel {
		p.next("'phi' incoming value")
		entry.valueName = tok.Text
	} else {
		entry.constant = p.parseConstant(phi.Type())
	}

	p.expect(token.Comma, "comma between value and label")
	block := p.expect(token.BlockLabel, "incoming block name")
	p.expect(token.RBracket, "']' after 'phi' incoming branch")

	entry.blockName = block.Text[1:]
	entry.line = block.Line
	return entry
}

func (p *parser) parseCall() ir.Value {
	retTy := p.parseTy()
	callee := p.expect(token.GlobalName, "name of function to call")
	calleeName := callee.Text[1:]

	p.expect(token.LParen, "'(' before argument list")
	var args []ir.Value
	var argTys []*types.Type
	for p.peek("call argument list").Kind != token.RParen {
		_, val := p.parseTyValPair()
		args = append(args, val)
		argTys = append(argTys, val.Type())
		if p.peek("call argument list").Kind != token.RParen {
			p.expect(token.Comma, "',' between arguments")
		}
	}
	p.expect(token.RParen, "')' after argument list")

	fn, exists := p.mod.FindFunc(calleeName)
	if !exists {
		fn = p.ib.CreateFunc(calleeName, retTy, argTys)
	} else {
		if fn.ReturnType() != retTy {
			p.errorf("attempted to call function '%s' with the wrong return type", callee.Text)
		}
		fnArgs := fn.Args()
		if len(args) != len(fnArgs) {
			p.errorf("attempted to call function '%s' with the wrong number of arguments", callee.Text)
		}
		for i := range args {
			if args[i].Type() != fnArgs[i].Type() {
				p.errorf("attempted to call function '%s' with arguments of the wrong type", callee.Text)
			}
		}
	}

	return p.ib.CreateCall(fn, args)
}

func (p *parser) parseSel() ir.Value {
	ty := p.parseTy()
	p.expect(token.Comma, "comma after 'sel' type")
	cond := p.parseBoolCondition("'sel' condition")

	p.expect(token.Comma, "comma after 'sel' condition")
	p.expect(token.KwIf, "'if' after 'sel' condition")
	ifTrue := p.parseRefValue(ty)

	p.expect(token.Comma, "comma after 'sel' 'if'")
	p.expect(token.KwElse, "'else' after 'sel' 'if'")
	ifFalse := p.parseRefValue(ty)

	return p.ib.CreateSel(cond, ifTrue, ifFalse)
}

func (p *parser) parseBr() ir.Value {
	label := p.expect(token.BlockLabel, "block label")
	return p.ib.CreateBr(p.createOrGetBlock(label.Text))
}

func (p *parser) parseCbr() ir.Value {
	cond := p.parseBoolCondition("'cbr' condition")

	p.expect(token.Comma, "comma after 'cbr' condition")
	p.expect(token.KwIf, "'if' for 'cbr'")
	ifLabel := p.expect(token.BlockLabel, "block label for 'if'")

	p.expect(token.Comma, "comma after 'cbr' 'if'")
	p.expect(token.KwElse, "'else' for 'cbr'")
	elseLabel := p.expect(token.BlockLabel, "block label for 'else'")

	return p.ib.CreateCondBr(cond,
		p.createOrGetBlock(ifLabel.Text),
		p.createOrGetBlock(elseLabel.Text))
}

func (p *parser) parseRet() ir.Value {
	ty := p.parseTy()
	if ty.IsVoid() {
		if !p.fn.ReturnType().IsVoid() {
			p.errorf("'ret void' inside function returning '%s'", p.fn.ReturnType())
		}
		return p.ib.CreateRetVoid()
	}
	if ty != p.fn.ReturnType() {
		p.errorf("'ret' type '%s' does not match function return type '%s'",
			ty, p.fn.ReturnType())
	}
	return p.ib.CreateRet(p.parseRefValue(ty))
}

func (p *parser) parseICmp() ir.Value {
	tok := p.next("opcode after 'icmp'")
	var order ir.ICmpOrdering
	switch tok.Kind {
	case token.KwEq:
		order = ir.ICmpEQ
	case token.KwNe:
		order = ir.ICmpNE
	case token.KwUgt:
		order = ir.ICmpUGT
	case token.KwUlt:
		order = ir.ICmpULT
	case token.KwUge:
		order = ir.ICmpUGE
	case token.KwUle:
		order = ir.ICmpULE
	case token.KwSgt:
		order = ir.ICmpSGT
	case token.KwSlt:
		order = ir.ICmpSLT
	case token.KwSge:
		order = ir.ICmpSGE
	case token.KwSle:
		order = ir.ICmpSLE
	default:
		p.errorf("expected 'icmp' opcode, but got '%s'", tok.Text)
	}

	lhs, rhs := p.parseBinopOperands()
	if !lhs.Type().IsInt() && !lhs.Type().IsBool() {
		p.errorf("expected 'icmp' operands to be integers or 'bool' values but got '%s'", lhs.Type())
	}
	return p.ib.CreateICmp(order, lhs, rhs)
}

func (p *parser) parseFCmp() ir.Value {
	tok := p.next("opcode after 'fcmp'")
	var order ir.FCmpOrdering
	switch tok.Kind {
	case token.KwOrd:
		order = ir.FCmpORD
	case token.KwUno:
		order = ir.FCmpUNO
	case token.KwOeq:
		order = ir.FCmpOEQ
	case token.KwOne:
		order = ir.FCmpONE
	case token.KwOgt:
		order = ir.FCmpOGT
	case token.KwOlt:
		order = ir.FCmpOLT
	case token.KwOge:
		order = ir.FCmpOGE
	case token.KwOle:
		order = ir.FCmpOLE
	case token.KwUeq:
		order = ir.FCmpUEQ
	case token.KwUne:
		order = ir.FCmpUNE
	case token.KwUgt:
		order = ir.FCmpUGT
	case token.KwUlt:
		order = ir.FCmpULT
	case token.KwUge:
		order = ir.FCmpUGE
	case token.KwUle:
		order = ir.FCmpULE
	default:
		p.errorf("expected 'fcmp' opcode, but got '%s'", tok.Text)
	}

	lhs, rhs := p.parseBinopOperands()
	if !lhs.Type().IsFloat() {
		p.errorf("expected 'fcmp' operands to be of floating-point types, but got '%s'", lhs.Type())
	}
	return p.ib.CreateFCmp(order, lhs, rhs)
}

func (p *parser) parseVolatile() bool {
	if p.peek("operand").Kind == token.KwVolatile {
		p.next("'volatile'")
		return true
	}
	return false
}

func (p *parser) parseLoad() ir.Value {
	volatile := p.parseVolatile()
	ty := p.parseTy()
	if ty.IsVoid() {
		p.errorf("'load' cannot load void")
	}

	p.expect(token.Comma, "comma after 'load' type")
	ptrTy, target := p.parseTyValPair()
	if !ptrTy.IsPtr() {
		p.errorf("can only load from 'ptr' operand")
	}
	return p.ib.CreateLoad(ty, target, volatile)
}

func (p *parser) parseStore() ir.Value {
	volatile := p.parseVolatile()
	storeTy, value := p.parseTyValPair()
	if storeTy.IsVoid() {
		p.errorf("'store' cannot store void")
	}

	p.expect(token.Comma, "comma after 'store' operand")
	ptrTy, target := p.parseTyValPair()
	if !ptrTy.IsPtr() {
		p.errorf("cannot store to non-'ptr' value")
	}
	return p.ib.CreateStore(value, target, volatile)
}

func (p *parser) parseAlloca() ir.Value {
	ty := p.parseTy()
	if ty.IsVoid() {
		p.errorf("'alloca' cannot allocate void")
	}
	if p.peek("end of 'alloca'").Kind != token.Comma {
		return p.ib.CreateAlloca(ty)
	}
	p.next("','")
	countTy, count := p.parseTyValPair()
	if !countTy.IsInt() {
		p.errorf("'alloca' object count must be an integer, got '%s'", countTy)
	}
	return p.ib.CreateAllocaCount(ty, count)
}

func (p *parser) parseOffset() ir.Value {
	elemTy := p.parseTy()
	p.expect(token.Comma, "comma after 'index' type")

	ptrTy, base := p.parseTyValPair()
	if !ptrTy.IsPtr() {
		p.errorf("'index' first operand must be a pointer, got '%s'", ptrTy)
	}
	p.expect(token.Comma, "comma after 'index' pointer")

	idxTy, idx := p.parseTyValPair()
	if !idxTy.IsInt() {
		p.errorf("'index' second operand must be an integer, got '%s'", idxTy)
	}
	return p.ib.CreateOffset(elemTy, base, idx)
}

func (p *parser) parseExtract() ir.Value {
	aggTy, agg := p.parseTyValPair()
	p.expect(token.Comma, "comma after 'extract' aggregate")
	_, idx := p.parseTyValPair()
	p.checkAggIndex("extract", aggTy, idx)
	return p.ib.CreateExtract(agg, idx)
}

func (p *parser) parseInsert() ir.Value {
	aggTy, agg := p.parseTyValPair()
	p.expect(token.Comma, "comma after 'insert' aggregate")
	_, value := p.parseTyValPair()
	p.expect(token.Comma, "comma after 'insert' value")
	_, idx := p.parseTyValPair()

	elem := p.checkAggIndex("insert", aggTy, idx)
	if elem != nil && value.Type() != elem {
		p.errorf("'insert' value type '%s' does not match element type '%s'",
			value.Type(), elem)
	}
	return p.ib.CreateInsert(agg, value, idx)
}

func (p *parser) parseElemPtr() ir.Value {
	aggTy := p.parseTy()
	p.expect(token.Comma, "comma after 'elemptr' type")

	ptrTy, base := p.parseTyValPair()
	if !ptrTy.IsPtr() {
		p.errorf("'elemptr' base must be a pointer, got '%s'", ptrTy)
	}
	p.expect(token.Comma, "comma after 'elemptr' pointer")

	_, idx := p.parseTyValPair()
	p.checkAggIndex("elemptr", aggTy, idx)
	return p.ib.CreateElemPtr(aggTy, base, idx)
}

// checkAggIndex mirrors the builder's aggregate indexing invariants but
// reports them as parse errors. Returns the selected element type, or nil
// for a dynamically indexed array.
func (p *parser) checkAggIndex(op string, aggTy *types.Type, idx ir.Value) *types.Type {
	if !idx.Type().IsInt() {
		p.errorf("'%s' index must be an integer, got '%s'", op, idx.Type())
	}
	switch {
	case aggTy.IsArray():
		if c, ok := idx.(*ir.ConstantInt); ok {
			if c.RealValue() >= aggTy.Len() {
				p.errorf("'%s' index %d is out of bounds for '%s'", op, c.RealValue(), aggTy)
			}
			return aggTy.Elem()
		}
		return nil
	case aggTy.IsStruct():
		c, ok := idx.(*ir.ConstantInt)
		if !ok {
			p.errorf("'%s' index must be a constant integer when given a structure", op)
		}
		fields := aggTy.Fields()
		if c.RealValue() >= uint64(len(fields)) {
			p.errorf("'%s' index %d is out of bounds for '%s'", op, c.RealValue(), aggTy)
		}
		return fields[c.RealValue()]
	default:
		p.errorf("'%s' only operates on arrays or structures, got '%s'", op, aggTy)
		return nil
	}
}

// Conversion parsing. The shared shape is "op to-type, from-type value".

func (p *parser) parseConversionOperands() (*types.Type, ir.Value) {
	toTy := p.parseTy()
	p.expect(token.Comma, "comma between conversion output and input")
	_, val := p.parseTyValPair()
	return toTy, val
}

func (p *parser) parseExtension(op string, create func(*types.Type, ir.Value) ir.Value) ir.Value {
	toTy, val := p.parseConversionOperands()
	if !toTy.IsInt() || !val.Type().IsInt() {
		p.errorf("expected operand type to be integral but got '%s'", val.Type())
	}
	if val.Type().Width() >= toTy.Width() {
		p.errorf("'%s' must expand the integer, cannot go from '%s' to '%s'",
			op, val.Type(), toTy)
	}
	return create(toTy, val)
}

func (p *parser) parseTrunc() ir.Value {
	toTy, val := p.parseConversionOperands()
	if !toTy.IsInt() || !val.Type().IsInt() {
		p.errorf("expected operand type to be integral but got '%s'", val.Type())
	}
	return p.ib.CreateTrunc(toTy, val)
}

func (p *parser) parseItob() ir.Value {
	toTy, val := p.parseConversionOperands()
	if !toTy.IsBool() {
		p.errorf("'itob' result type must be 'bool', got '%s'", toTy)
	}
	if !val.Type().IsInt() {
		p.errorf("expected operand type to be integral but got '%s'", val.Type())
	}
	return p.ib.CreateIToB(val)
}

func (p *parser) parseBtoi() ir.Value {
	toTy, val := p.parseConversionOperands()
	if !toTy.IsInt() {
		p.errorf("'btoi' result type must be integral, got '%s'", toTy)
	}
	if !val.Type().IsBool() {
		p.errorf("expected operand type to be 'bool' but got '%s'", val.Type())
	}
	return p.ib.CreateBToI(toTy, val)
}

func (p *parser) parseItop() ir.Value {
	toTy, val := p.parseConversionOperands()
	if !toTy.IsPtr() {
		p.errorf("'itop' result type must be 'ptr', got '%s'", toTy)
	}
	if !val.Type().IsInt() {
		p.errorf("expected operand type to be integral but got '%s'", val.Type())
	}
	return p.ib.CreateIToP(val)
}

func (p *parser) parsePtoi() ir.Value {
	toTy, val := p.parseConversionOperands()
	if !toTy.IsInt() {
		p.errorf("'ptoi' result type must be integral, got '%s'", toTy)
	}
	if !val.Type().IsPtr() {
		p.errorf("expected operand type to be 'ptr' but got '%s'", val.Type())
	}
	return p.ib.CreatePToI(toTy, val)
}

func (p *parser) parseIntToFloat(op string, create func(*types.Type, ir.Value) ir.Value) ir.Value {
	toTy, val := p.parseConversionOperands()
	if !toTy.IsFloat() {
		p.errorf("'%s' result type must be floating-point, got '%s'", op, toTy)
	}
	if !val.Type().IsInt() {
		p.errorf("expected operand type to be integral but got '%s'", val.Type())
	}
	return create(toTy, val)
}

func (p *parser) parseFloatToInt(op string, create func(*types.Type, ir.Value) ir.Value) ir.Value {
	toTy, val := p.parseConversionOperands()
	if !toTy.IsInt() {
		p.errorf("'%s' result type must be integral, got '%s'", op, toTy)
	}
	if !val.Type().IsFloat() {
		p.errorf("expected operand type to be floating-point but got '%s'", val.Type())
	}
	return create(toTy, val)
}

func (p *parser) parseBoolCondition(what string) ir.Value {
	_, val := p.parseTyValPair()
	if !val.Type().IsBool() {
		p.errorf("%s value expected to be of type 'bool' but got '%s'", what, val.Type())
	}
	return val
}
