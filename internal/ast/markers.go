package ast

func (*Ident) exprNode()         {}
func (*IntLiteral) exprNode()    {}
func (*RealLiteral) exprNode()   {}
func (*BoolLiteral) exprNode()   {}
func (*StringLiteral) exprNode() {}
func (*TimeLiteral) exprNode()   {}
func (*TypedLiteral) exprNode()  {}
func (*EnumLiteral) exprNode()   {}
func (*DirectAddress) exprNode() {}
func (*Member) exprNode()        {}
func (*Index) exprNode()         {}
func (*Deref) exprNode()         {}
func (*Call) exprNode()          {}
func (*Binary) exprNode()        {}
func (*Unary) exprNode()         {}
func (*Paren) exprNode()         {}
func (*Range) exprNode()         {}

func (*Ident) initNode()         {}
func (*IntLiteral) initNode()    {}
func (*RealLiteral) initNode()   {}
func (*BoolLiteral) initNode()   {}
func (*StringLiteral) initNode() {}
func (*TimeLiteral) initNode()   {}
func (*TypedLiteral) initNode()  {}
func (*EnumLiteral) initNode()   {}
func (*DirectAddress) initNode() {}
func (*Member) initNode()        {}
func (*Index) initNode()         {}
func (*Deref) initNode()         {}
func (*Call) initNode()          {}
func (*Binary) initNode()        {}
func (*Unary) initNode()         {}
func (*Paren) initNode()         {}
func (*Range) initNode()         {}

func (*ArrayInit) initNode()  {}
func (*StructInit) initNode() {}

func (*PositionalArg) argNode() {}
func (*NamedArg) argNode()      {}
func (*OutputArg) argNode()     {}

func (*Assignment) stmtNode()    {}
func (*CallStatement) stmtNode() {}
func (*If) stmtNode()            {}
func (*Case) stmtNode()          {}
func (*For) stmtNode()           {}
func (*While) stmtNode()         {}
func (*Repeat) stmtNode()        {}
func (*Return) stmtNode()        {}
func (*Exit) stmtNode()          {}
func (*Continue) stmtNode()      {}
func (*Jmp) stmtNode()           {}
func (*Label) stmtNode()         {}
func (*Empty) stmtNode()         {}

func (*SimpleType) typeNode()   {}
func (*StringType) typeNode()   {}
func (*ArrayType) typeNode()    {}
func (*PointerType) typeNode()  {}
func (*SubrangeType) typeNode() {}
func (*EnumSpec) typeNode()     {}

func (*StructType) dataTypeNode() {}
func (*UnionType) dataTypeNode()  {}
func (*EnumType) dataTypeNode()   {}
func (*AliasType) dataTypeNode()  {}

func (*FunctionBlock) unitNode()       {}
func (*Program) unitNode()             {}
func (*Function) unitNode()            {}
func (*Method) unitNode()              {}
func (*Property) unitNode()            {}
func (*Action) unitNode()              {}
func (*Interface) unitNode()           {}
func (*DataTypeDeclaration) unitNode() {}
func (*GlobalVariableList) unitNode()  {}
